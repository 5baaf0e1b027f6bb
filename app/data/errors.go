package data

import (
	"github.com/pkg/errors"

	"github.com/Rahmadjon0038/new-lms/app/client"
)

var (
	errEmptyBody = errors.New("empty body")

	ErrNotFound = errors.New("data: not found")
	// ErrReadOnly is returned by guide writes made through the teacher view.
	ErrReadOnly = errors.New("data: guide view is read-only")
	// ErrSalaryClosed is returned for edits of a closed salary month.
	ErrSalaryClosed = errors.New("data: salary month is closed")
)

// UserMessage is the text a toast shows for err.
func UserMessage(err error, fallback string) string {
	var inv *InvalidError
	switch {
	case errors.As(err, &inv):
		return inv.Error()
	case errors.Is(err, ErrSalaryClosed):
		return "Bu oy yopilgan, o'zgartirib bo'lmaydi"
	case errors.Is(err, ErrReadOnly):
		return "Ruxsat yo'q"
	case errors.Is(err, ErrNotFound):
		return "Topilmadi"
	}
	return client.Message(err, fallback)
}
