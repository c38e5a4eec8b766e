package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window
)

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(XConn)
	XRoot = setup.DefaultScreen(XConn).Root
	return nil
}

// DisplaySize returns the pixel size of the default X11 screen.
func DisplaySize() (int, int, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 0, 0, err
		}
	}

	screen := xproto.Setup(XConn).DefaultScreen(XConn)
	return int(screen.WidthInPixels), int(screen.HeightInPixels), nil
}

func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}
