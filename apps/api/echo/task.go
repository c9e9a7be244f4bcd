package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core/task"
)

type taskApi struct {
	svc *task.Service
}

func registerTaskAPI(g *echo.Group, admin echo.MiddlewareFunc, svc *task.Service) {
	api := taskApi{svc: svc}

	tg := g.Group("/tasks")

	// reads are open
	tg.GET("", api.query)
	tg.GET("/summary", api.summary)
	tg.GET("/months", api.months)
	tg.GET("/timeline", api.timeline)
	tg.GET("/:id", api.retrieve)

	// mutations need an admin token
	tg.POST("", api.create, admin)
	tg.PUT("/:id", api.update, admin)
	tg.PATCH("/:id", api.partialUpdate, admin)
	tg.DELETE("/:id", api.destroy, admin)
}

// Handlers

func (api *taskApi) query(ctx echo.Context) error {
	tasks, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}

	filters := task.Filters{
		Department: ctx.QueryParam("department"),
		Status:     ctx.QueryParam("status"),
		Month:      ctx.QueryParam("month"),
	}
	return ctx.JSON(http.StatusOK, task.Filter(tasks, filters))
}

func (api *taskApi) summary(ctx echo.Context) error {
	tasks, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	return ctx.JSON(http.StatusOK, task.Summarize(tasks))
}

func (api *taskApi) months(ctx echo.Context) error {
	tasks, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	return ctx.JSON(http.StatusOK, task.Months(tasks))
}

func (api *taskApi) timeline(ctx echo.Context) error {
	tasks, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}

	window := task.DefaultWindow()
	months := make([]string, 0)
	for _, m := range window.Months() {
		months = append(months, task.MonthKey(m))
	}
	return ctx.JSON(http.StatusOK, TimelineResponse{
		Months:      months,
		Bars:        window.Bars(tasks),
		TodayOffset: window.TodayOffset(time.Now()),
	})
}

func (api *taskApi) create(ctx echo.Context) error {
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	t, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *taskApi) retrieve(ctx echo.Context) error {
	t, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) update(ctx echo.Context) error {
	return api.applyUpdate(ctx)
}

func (api *taskApi) partialUpdate(ctx echo.Context) error {
	return api.applyUpdate(ctx)
}

// applyUpdate serves both PUT and PATCH: absent fields are left untouched,
// a present-but-empty departments array clears the list.
func (api *taskApi) applyUpdate(ctx echo.Context) error {
	var data task.UpdateTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	t, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type TimelineResponse struct {
	Months      []string   `json:"months"`
	Bars        []task.Bar `json:"bars"`
	TodayOffset float64    `json:"todayOffset"`
}
