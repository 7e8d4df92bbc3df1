package optimise_router

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/jobs"
	"gear-loadout-optimiser/internal/optimizer"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Inventory supplies the stored gear pool and loadout.
type Inventory interface {
	Items(ctx context.Context) ([]gear.Item, error)
	Loadout(ctx context.Context) (gear.Loadout, error)
}

const defaultJobListLimit = 50

type Config struct {
	Options   optimizer.Options
	Jobs      *jobs.Manager
	Inventory Inventory
	// History answers for jobs the manager no longer holds.
	History jobs.StatusHistory
}

type startJobBody struct {
	JobID string `json:"job_id"`
	optimizer.Request
}

func tooManyCombinations(c echo.Context, err error) error {
	var tooMany *optimizer.TooManyCombinationsError
	if !errors.As(err, &tooMany) {
		return err
	}
	return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
		"error":        "too_many_combinations",
		"combinations": tooMany.Combinations,
		"ceiling":      tooMany.Ceiling,
		"message":      err.Error(),
	})
}

func optimise(c echo.Context, cfg Config, req optimizer.Request) error {
	computation, err := optimizer.Optimize(c.Request().Context(), req, cfg.Options)
	if errors.Is(err, optimizer.ErrTooManyCombinations) {
		return tooManyCombinations(c, err)
	}
	if optimizer.IsCancelled(err) {
		log.Debug().Msg("Client went away, optimisation cancelled")
		return c.String(http.StatusRequestTimeout, "optimisation cancelled")
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to optimise")
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, computation)
}

func Bind(e *echo.Group, cfg Config) *echo.Group {
	e.POST("/optimize", func(c echo.Context) error {
		var req optimizer.Request
		if err := c.Bind(&req); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}

		return optimise(c, cfg, req)
	})

	if cfg.Inventory != nil {
		e.POST("/optimize/stored", func(c echo.Context) error {
			var req optimizer.Request
			if err := c.Bind(&req); err != nil {
				return c.String(http.StatusBadRequest, err.Error())
			}

			ctx := c.Request().Context()
			pool, err := cfg.Inventory.Items(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to load gear items")
				return c.String(http.StatusInternalServerError, err.Error())
			}
			loadout, err := cfg.Inventory.Loadout(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to load equipped gear")
				return c.String(http.StatusInternalServerError, err.Error())
			}
			req.Pool = pool
			req.Equipped = loadout

			return optimise(c, cfg, req)
		})
	}

	e.POST("/jobs", func(c echo.Context) error {
		var body startJobBody
		if err := c.Bind(&body); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}

		jobID, err := cfg.Jobs.Start(body.JobID, body.Request, func(event jobs.Event) {
			if event.Type == jobs.EventProgress {
				log.Debug().Msgf("Job %s: %d/%d", event.JobID, event.Current, event.Total)
			}
		})
		if err != nil {
			return c.String(http.StatusServiceUnavailable, err.Error())
		}

		return c.JSON(http.StatusAccepted, map[string]string{"job_id": jobID})
	})

	e.GET("/jobs", func(c echo.Context) error {
		limit := defaultJobListLimit
		if value := c.QueryParam("limit"); value != "" {
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return c.String(http.StatusBadRequest, "limit must be a positive integer")
			}
			limit = n
		}

		if cfg.History != nil {
			snapshots, err := cfg.History.Recent(limit)
			if err != nil {
				log.Error().Err(err).Msg("Failed to list recorded jobs")
				return c.String(http.StatusInternalServerError, err.Error())
			}
			return c.JSON(http.StatusOK, snapshots)
		}

		snapshots := make([]jobs.Snapshot, 0, limit)
		for _, jobID := range cfg.Jobs.Jobs() {
			if len(snapshots) == limit {
				break
			}
			snapshot, err := cfg.Jobs.Get(jobID)
			if err != nil {
				continue
			}
			snapshot.Result = nil
			snapshots = append(snapshots, snapshot)
		}
		return c.JSON(http.StatusOK, snapshots)
	})

	e.GET("/jobs/:job_id", func(c echo.Context) error {
		jobID := c.Param("job_id")
		snapshot, err := cfg.Jobs.Get(jobID)
		if err == nil {
			return c.JSON(http.StatusOK, snapshot)
		}
		if !errors.Is(err, jobs.ErrJobNotFound) {
			return c.String(http.StatusInternalServerError, err.Error())
		}

		if cfg.History != nil {
			recorded, err := cfg.History.Entry(jobID)
			if err != nil {
				log.Error().Err(err).Msgf("Failed to read recorded job %s", jobID)
				return c.String(http.StatusInternalServerError, err.Error())
			}
			if recorded != nil {
				return c.JSON(http.StatusOK, recorded)
			}
		}

		return c.String(http.StatusNotFound, "Job not found")
	})

	e.DELETE("/jobs/:job_id", func(c echo.Context) error {
		err := cfg.Jobs.Cancel(c.Param("job_id"))
		if errors.Is(err, jobs.ErrJobNotFound) {
			return c.String(http.StatusNotFound, "Job not found")
		}
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}

		return c.NoContent(http.StatusAccepted)
	})

	return e
}
