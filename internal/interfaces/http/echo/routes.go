package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(
	server *e.Echo,
	uploadHandler *UploadHandler,
	productHandler *ProductHandler,
	taskHandler *TaskHandler,
	importJobHandler *ImportJobHandler,
	webhookHandler *WebhookHandler,
) {
	v1 := server.Group("/api/v1")

	if productHandler != nil {
		v1.GET("/products", productHandler.ListProducts)
		v1.POST("/products", productHandler.CreateProduct)
		v1.DELETE("/products", productHandler.BulkDeleteProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.PUT("/products/:id", productHandler.UpdateProduct)
		v1.DELETE("/products/:id", productHandler.DeleteProduct)
	}
	if uploadHandler != nil {
		v1.POST("/products/upload", uploadHandler.UploadProducts)
	}
	if taskHandler != nil {
		v1.GET("/tasks/:id", taskHandler.GetTaskStatus)
	}
	if importJobHandler != nil {
		v1.GET("/imports/:job_id", importJobHandler.GetImportJob)
	}
	if webhookHandler != nil {
		v1.GET("/webhooks", webhookHandler.ListWebhooks)
		v1.POST("/webhooks", webhookHandler.CreateWebhook)
		v1.DELETE("/webhooks/:id", webhookHandler.DeleteWebhook)
	}
}
