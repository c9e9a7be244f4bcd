package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core/department"
)

type departmentApi struct {
	svc *department.Service
}

func registerDepartmentAPI(g *echo.Group, svc *department.Service) {
	api := departmentApi{svc: svc}

	dg := g.Group("/departments")

	dg.GET("", api.query)
	dg.POST("", api.create)
	dg.GET("/:id", api.retrieve)
	dg.PUT("/:id", api.update)
	dg.DELETE("/:id", api.destroy)

	dg.GET("/:id/documents", api.queryDocuments)
	dg.POST("/:id/documents", api.uploadDocument)
	dg.GET("/:id/documents/:docID", api.fetchDocument)
}

// Handlers

func (api *departmentApi) query(ctx echo.Context) error {
	depts, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying departments")
	}
	if search := ctx.QueryParam("search"); search != "" {
		depts = department.Search(depts, search)
	}
	return ctx.JSON(http.StatusOK, depts)
}

func (api *departmentApi) create(ctx echo.Context) error {
	var data department.NewDepartment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDepartment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	dept, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating department")
	}
	return ctx.JSON(http.StatusCreated, dept)
}

func (api *departmentApi) retrieve(ctx echo.Context) error {
	dept, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dept)
}

func (api *departmentApi) update(ctx echo.Context) error {
	var data department.NewDepartment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDepartment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	dept, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dept)
}

func (api *departmentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
