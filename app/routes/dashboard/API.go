package dashboard

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/Rahmadjon0038/new-lms/app/prefs"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

const editURL = "/dashboard?edit=1"

func board(c *fiber.Ctx) (prefs.Board, error) {
	b, ok := prefs.BoardByName(c.Params("board"))
	if !ok {
		return b, fiber.NewError(fiber.StatusNotFound, "Bunday bo'lim yo'q")
	}
	return b, nil
}

// owner keys card preferences by the id the backend's profile reports for
// this token. The token's own claims are never trusted for it.
func (h *handler) owner(c *fiber.Ctx) (string, error) {
	p, err := h.Data.Profile(web.Ctx(c))
	if err != nil {
		return "", err
	}
	if p.ID <= 0 {
		return "", fiber.ErrUnauthorized
	}
	return strconv.FormatInt(p.ID, 10), nil
}

// MoveCardAPI moves a card by one step (dir=up|down) or to an index (to=n).
func (h *handler) MoveCardAPI(c *fiber.Ctx) error {
	b, err := board(c)
	if err != nil {
		return err
	}
	ctx := web.Ctx(c)
	user, err := h.owner(c)
	if err != nil {
		return h.Fail(c, err, editURL)
	}
	card := c.Params("card")

	switch c.FormValue("dir") {
	case "up":
		_, err = h.Prefs.Shift(ctx, user, b, card, -1)
	case "down":
		_, err = h.Prefs.Shift(ctx, user, b, card, 1)
	default:
		to, convErr := strconv.Atoi(c.FormValue("to"))
		if convErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Noto'g'ri joy")
		}
		_, err = h.Prefs.Move(ctx, user, b, card, to)
	}
	if err != nil {
		return h.cardError(c, err)
	}
	return c.Redirect(editURL, fiber.StatusSeeOther)
}

func (h *handler) ToggleCardAPI(c *fiber.Ctx) error {
	b, err := board(c)
	if err != nil {
		return err
	}
	user, err := h.owner(c)
	if err != nil {
		return h.Fail(c, err, editURL)
	}
	if _, err := h.Prefs.Toggle(web.Ctx(c), user, b, c.Params("card")); err != nil {
		return h.cardError(c, err)
	}
	return c.Redirect(editURL, fiber.StatusSeeOther)
}

func (h *handler) ResetCardsAPI(c *fiber.Ctx) error {
	b, err := board(c)
	if err != nil {
		return err
	}
	user, err := h.owner(c)
	if err != nil {
		return h.Fail(c, err, editURL)
	}
	if err := h.Prefs.Reset(web.Ctx(c), user, b); err != nil {
		return h.Fail(c, err, editURL)
	}
	return h.Done(c, "Kartalar tartibi tiklandi", editURL)
}

func (h *handler) cardError(c *fiber.Ctx, err error) error {
	if errors.Is(err, prefs.ErrUnknownCard) {
		return fiber.NewError(fiber.StatusNotFound, "Bunday karta yo'q")
	}
	return h.Fail(c, err, editURL)
}
