package gear_router

import (
	"context"
	"errors"
	"io"
	"net/http"

	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/models"
	"gear-loadout-optimiser/internal/profile"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Store interface {
	Items(ctx context.Context) ([]gear.Item, error)
	Item(ctx context.Context, id string) (*gear.Item, error)
	SaveItem(ctx context.Context, item gear.Item) error
	DeleteItem(ctx context.Context, id string) error
	Loadout(ctx context.Context) (gear.Loadout, error)
	SetLoadout(ctx context.Context, loadout gear.Loadout) error
	Import(ctx context.Context, items []gear.Item, loadout gear.Loadout) error
}

func Bind(e *echo.Group, store Store) *echo.Group {
	e.GET("/slots", func(c echo.Context) error {
		slots := make([]map[string]string, 0, len(gear.Slots))
		for _, slot := range gear.Slots {
			slots = append(slots, map[string]string{"slot": string(slot), "label": slot.Label()})
		}
		return c.JSON(http.StatusOK, slots)
	})

	if store == nil {
		return e
	}

	e.GET("/gear", func(c echo.Context) error {
		items, err := store.Items(c.Request().Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to get gear items")
			return c.String(http.StatusInternalServerError, err.Error())
		}

		return c.JSON(http.StatusOK, items)
	})

	e.GET("/gear/:item_id", func(c echo.Context) error {
		item, err := store.Item(c.Request().Context(), c.Param("item_id"))
		if errors.Is(err, models.ErrItemNotFound) {
			return c.String(http.StatusNotFound, "Item not found")
		}
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}

		return c.JSON(http.StatusOK, item)
	})

	e.PUT("/gear/:item_id", func(c echo.Context) error {
		var item gear.Item
		if err := c.Bind(&item); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		item.ID = c.Param("item_id")
		if !item.Slot.Valid() {
			return c.String(http.StatusBadRequest, "Unknown slot")
		}

		if err := store.SaveItem(c.Request().Context(), item); err != nil {
			log.Error().Err(err).Msgf("Failed to save item %s", item.ID)
			return c.String(http.StatusInternalServerError, err.Error())
		}

		return c.JSON(http.StatusOK, item)
	})

	e.DELETE("/gear/:item_id", func(c echo.Context) error {
		err := store.DeleteItem(c.Request().Context(), c.Param("item_id"))
		if errors.Is(err, models.ErrItemNotFound) {
			return c.String(http.StatusNotFound, "Item not found")
		}
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}

		return c.NoContent(http.StatusNoContent)
	})

	e.GET("/loadout", func(c echo.Context) error {
		loadout, err := store.Loadout(c.Request().Context())
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}

		return c.JSON(http.StatusOK, loadout)
	})

	e.PUT("/loadout", func(c echo.Context) error {
		loadout := make(gear.Loadout)
		if err := c.Echo().JSONSerializer.Deserialize(c, &loadout); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		for slot := range loadout {
			if !slot.Valid() {
				return c.String(http.StatusBadRequest, "Unknown slot "+string(slot))
			}
		}

		if err := store.SetLoadout(c.Request().Context(), loadout); err != nil {
			log.Error().Err(err).Msg("Failed to set loadout")
			return c.String(http.StatusInternalServerError, err.Error())
		}

		return c.JSON(http.StatusOK, loadout)
	})

	e.POST("/gear/import", func(c echo.Context) error {
		data, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}

		p, err := profile.Parse(data)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}

		items := p.StorableItems()
		if err := store.Import(c.Request().Context(), items, p.Equipped); err != nil {
			log.Error().Err(err).Msg("Failed to import profile gear")
			return c.String(http.StatusInternalServerError, err.Error())
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"imported": len(items),
			"warnings": p.Warnings,
		})
	})

	return e
}
