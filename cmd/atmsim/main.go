// Command atmsim is a runnable host-link bootstrap around the engine core:
// it opens a serial port (or falls back to a plain TCP socket) to a host
// simulator, frames/unframes bytes with the STX/ETX/LRC scheme in
// internal/infrastructure/hostlink, decodes them into the domain's
// HostMessage, drives engine.Terminal, and writes the resulting reply back.
// Framing and transport live here, never inside internal/engine — the
// core stays transport-agnostic.
package main

import (
	"flag"
	"net"
	"net/http"
	"time"

	"go.bug.st/serial"
	"golang.org/x/net/trace"

	"atmterm/internal/domain/models"
	"atmterm/internal/engine"
	"atmterm/internal/infrastructure/crypto"
	"atmterm/internal/infrastructure/display"
	"atmterm/internal/infrastructure/fit"
	"atmterm/internal/infrastructure/hardware"
	"atmterm/internal/infrastructure/hostlink"
	"atmterm/internal/infrastructure/logger"
	"atmterm/internal/infrastructure/screens"
	"atmterm/internal/infrastructure/settings"
	"atmterm/internal/infrastructure/statetable"
)

func main() {
	comName := flag.String("com", "", "serial port name (e.g. COM9 or /dev/ttyUSB0); empty falls back to -tcp")
	tcpAddr := flag.String("tcp", "127.0.0.1:9001", "host simulator TCP address, used when -com is empty")
	settingsPath := flag.String("settings", "atmsim-settings.json", "path to the persisted settings file")
	traceAddr := flag.String("trace", "127.0.0.1:9002", "address to serve /debug/requests on")
	flag.Parse()

	// 1. Logger (infrastructure)
	log := logger.NewStdLogger("atmsim: ")
	log.Info("starting")

	// 2. Settings store (infrastructure)
	store := settings.NewStore(*settingsPath, log)
	if err := store.Load(); err != nil {
		log.Fatal("failed to load settings: %v", err)
	}

	// 3. Collaborator adapters (infrastructure)
	screenCatalog := screens.NewCatalog(log)
	stateStore := statetable.NewStore(log)
	fitTable := fit.NewTable(log)
	cryptoAdapter := crypto.NewAdapter([]byte("0000000000000000"))
	displayAdapter := display.NewAdapter()
	hardwareAdapter := hardware.NewAdapter("0001", "ATMSIM0001")

	// 4. Wire the core
	term := engine.NewTerminal(engine.Capabilities{
		Screens:  screenCatalog,
		States:   stateStore,
		FITs:     fitTable,
		Crypto:   cryptoAdapter,
		Display:  displayAdapter,
		Hardware: hardwareAdapter,
		Settings: store,
		Logger:   log,
	})

	// 5. Serve /debug/requests so a live operator can watch host-message
	// traffic the same way a production NDC host-link process would.
	go func() {
		if err := http.ListenAndServe(*traceAddr, nil); err != nil {
			log.Warn("trace listener stopped: %v", err)
		}
	}()
	log.Info("trace page on http://%s/debug/requests", *traceAddr)

	// 6. Open the host link
	conn, err := dialHostLink(*comName, *tcpAddr, log)
	if err != nil {
		log.Fatal("failed to open host link: %v", err)
	}
	defer conn.Close()

	log.Info("host link open, driving terminal")
	runHostLoop(term, conn, log)
}

// hostConn is the minimal byte stream WriteFrame/ReadFrame need, satisfied
// by both serial.Port and net.Conn.
type hostConn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

func dialHostLink(comName, tcpAddr string, log interface{ Info(string, ...interface{}) }) (hostConn, error) {
	if comName != "" {
		mode := &serial.Mode{
			BaudRate: 9600,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
		port, err := serial.Open(comName, mode)
		if err != nil {
			return nil, err
		}
		log.Info("opened serial port %s", comName)
		return port, nil
	}
	conn, err := net.DialTimeout("tcp", tcpAddr, 5*time.Second)
	if err != nil {
		return nil, err
	}
	log.Info("connected to host simulator at %s", tcpAddr)
	return conn, nil
}

func runHostLoop(term *engine.Terminal, conn hostConn, log interface {
	Error(string, ...interface{})
	Warn(string, ...interface{})
}) {
	for {
		payload, err := hostlink.ReadFrame(conn)
		if err != nil {
			log.Error("read frame: %v", err)
			return
		}

		tr := trace.New("hostmsg", "ProcessHostMessage")
		msg, err := hostlink.DecodeHostMessage(payload)
		if err != nil {
			tr.LazyPrintf("decode error: %v", err)
			tr.SetError()
			tr.Finish()
			log.Warn("decode: %v", err)
			continue
		}

		reply := term.ProcessHostMessage(msg)
		tr.LazyPrintf("class=%d reply=%c", msg.Class, reply.StatusDescriptor)
		tr.Finish()

		if err := hostlink.WriteFrame(conn, hostlink.EncodeSolicitedStatusReply(reply)); err != nil {
			log.Error("write frame: %v", err)
			return
		}

		if req := term.TakeTransactionRequest(); req != nil {
			writeTransactionRequest(conn, req, log)
		}
	}
}

func writeTransactionRequest(conn hostConn, req *models.TransactionRequest, log interface {
	Error(string, ...interface{})
}) {
	if err := hostlink.WriteFrame(conn, hostlink.EncodeTransactionRequest(req)); err != nil {
		log.Error("write transaction request: %v", err)
	}
}
