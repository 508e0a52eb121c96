package echo

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
)

type UploadHandler struct {
	useCase app.UploadProductsCSV
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewUploadHandler(useCase app.UploadProductsCSV) *UploadHandler {
	return &UploadHandler{useCase: useCase}
}

// UploadProducts accepts a multipart CSV upload and answers 202 with the job
// and task handles; processing happens on the worker pool.
func (h *UploadHandler) UploadProducts(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "missing_file",
			Message: "multipart field 'file' is required",
		}})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "failed to open uploaded file",
		}})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "failed to read uploaded file",
		}})
	}

	out, err := h.useCase.Execute(c.Request().Context(), app.UploadProductsCSVInput{
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidFileType) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_file_type",
				Message: "only CSV files are allowed",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to start import",
		}})
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}
