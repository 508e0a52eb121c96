package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
)

type ImportJobHandler struct {
	useCase app.GetImportJob
}

func NewImportJobHandler(useCase app.GetImportJob) *ImportJobHandler {
	return &ImportJobHandler{useCase: useCase}
}

func (h *ImportJobHandler) GetImportJob(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetImportJobInput{
		JobID: c.Param("job_id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "import job not found",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get import job",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
