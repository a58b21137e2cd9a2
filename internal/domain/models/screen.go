package models

// Screen is the opaque unit the Screens and Display collaborators exchange.
// Screen text composition and rendering live entirely outside the core;
// the core only ever carries a Screen by reference.
type Screen struct {
	Number string
	Raw    []byte
}

// ScreenDisplayUpdate is the parsed form of an inbound dynamic screen
// update (Interactive Transaction Response, Transaction Reply Command).
type ScreenDisplayUpdate struct {
	Raw []byte
}
