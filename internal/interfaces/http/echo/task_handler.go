package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
)

type TaskHandler struct {
	useCase app.GetTaskStatus
}

func NewTaskHandler(useCase app.GetTaskStatus) *TaskHandler {
	return &TaskHandler{useCase: useCase}
}

// GetTaskStatus serves the polling endpoint. Unknown task IDs read as
// pending, so a handle can be polled the moment it is issued.
func (h *TaskHandler) GetTaskStatus(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetTaskStatusInput{
		TaskID: c.Param("id"),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get task status",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
