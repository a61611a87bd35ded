package lib

import (
	"fmt"
	"log"
	"os"
	"path"

	"github.com/yeqown/go-qrcode"
)

// EncodeTicketQR rasterizes a ticket number into a QR image under TEMP_DIR
// and returns the file path. The payload is the bare ticket number; scanners
// post it to the check-in endpoint as-is.
func EncodeTicketQR(ticketNumber string) (string, error) {
	qrc, err := qrcode.New(ticketNumber)
	if err != nil {
		return "", err
	}
	tempdir := os.Getenv("TEMP_DIR")
	if tempdir == "" {
		tempdir = os.TempDir()
	}
	filepath := path.Join(tempdir, fmt.Sprintf("%s.png", ticketNumber))
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return "", err
	}
	return filepath, nil
}
