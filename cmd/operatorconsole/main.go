// Command operatorconsole is a declarative walk GUI standing in for the
// terminal's physical screen and FDK strip. It reads rendered screen text
// from a display.Adapter and forwards FDK presses (A..I) straight into
// engine.Terminal.ProcessFDKButtonPressed, the same way a real FDK bezel
// would. It is a demo/dev tool, not a host-link client: it runs standalone
// with a freshly booted Terminal of its own, for manual exploration of the
// state tables.
package main

import (
	d "github.com/lxn/walk/declarative"

	"github.com/lxn/walk"

	"atmterm/internal/engine"
	"atmterm/internal/infrastructure/crypto"
	"atmterm/internal/infrastructure/display"
	"atmterm/internal/infrastructure/fit"
	"atmterm/internal/infrastructure/hardware"
	"atmterm/internal/infrastructure/logger"
	"atmterm/internal/infrastructure/screens"
	"atmterm/internal/infrastructure/settings"
	"atmterm/internal/infrastructure/statetable"
)

var (
	mw         *walk.MainWindow
	screenText *walk.TextEdit

	term       *engine.Terminal
	displayAdp *display.Adapter
)

const fdkLetters = "ABCDEFGHI"

func main() {
	log := logger.NewStdLogger("operatorconsole: ")

	store := settings.NewStore("operatorconsole-settings.json", log)
	if err := store.Load(); err != nil {
		log.Fatal("failed to load settings: %v", err)
	}
	displayAdp = display.NewAdapter()

	term = engine.NewTerminal(engine.Capabilities{
		Screens:  screens.NewCatalog(log),
		States:   statetable.NewStore(log),
		FITs:     fit.NewTable(log),
		Crypto:   crypto.NewAdapter([]byte("0000000000000000")),
		Display:  displayAdp,
		Hardware: hardware.NewAdapter("0001", "CONSOLE0001"),
		Settings: store,
		Logger:   log,
	})

	fdkButtons := make([]d.Widget, 0, len(fdkLetters))
	for _, letter := range fdkLetters {
		l := byte(letter)
		fdkButtons = append(fdkButtons, d.PushButton{
			Text:      string(l),
			MinSize:   d.Size{Width: 40, Height: 30},
			OnClicked: func() { onFDKPressed(l) },
		})
	}

	if _, err := (d.MainWindow{
		AssignTo: &mw,
		Title:    "ATM Terminal Operator Console",
		Size:     d.Size{Width: 480, Height: 420},
		Layout:   d.VBox{},
		Children: []d.Widget{
			d.GroupBox{
				Title:  "Screen",
				Layout: d.VBox{},
				Children: []d.Widget{
					d.TextEdit{
						AssignTo: &screenText,
						ReadOnly: true,
						MinSize:  d.Size{Width: 440, Height: 220},
					},
				},
			},
			d.GroupBox{
				Title:  "Function Display Keys",
				Layout: d.Grid{Columns: 9, Spacing: 4},
				Children: fdkButtons,
			},
		},
	}.Create()); err != nil {
		log.Fatal("failed to create window: %v", err)
	}

	refreshScreen()
	mw.Run()
}

func onFDKPressed(letter byte) {
	term.ProcessFDKButtonPressed(letter)
	refreshScreen()
}

func refreshScreen() {
	text, err := displayAdp.RenderedText()
	if err != nil {
		screenText.SetText("(render error: " + err.Error() + ")")
		return
	}
	screenText.SetText(text)
}
