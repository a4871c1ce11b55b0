package delivery

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"paquexpress-service/internal/storage/photos"
)

const photoTimeLayout = "20060102150405"

type defaultNameFactory struct {
	newID func() string
}

// NewNameFactory returns the NameFactory used in production.
func NewNameFactory() NameFactory {
	return defaultNameFactory{newID: func() string { return uuid.NewString() }}
}

// PhotoName returns entrega_<packageID>_<YYYYMMDDHHMMSS>_<uuid><ext>.
func (f defaultNameFactory) PhotoName(packageID int64, at time.Time, filename string) string {
	return fmt.Sprintf("entrega_%d_%s_%s%s", packageID, at.Format(photoTimeLayout), f.newID(), photos.Ext(filename))
}
