package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	CriarEvento(c *ginext.Context)
	AtualizarEvento(c *ginext.Context)
	GetEvento(c *ginext.Context)
	ListarEventos(c *ginext.Context)
	ExcluirEvento(c *ginext.Context)
	CriarCadastro(c *ginext.Context)
	AtualizarCadastro(c *ginext.Context)
	GetCadastro(c *ginext.Context)
	ListarCadastros(c *ginext.Context)
	AlterarStatus(c *ginext.Context)
	ExcluirCadastro(c *ginext.Context)
	UploadDocumento(c *ginext.Context)
	ExportarBackup(c *ginext.Context)
	ImportarBackup(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Eventos
		api.POST("/eventos", h.CriarEvento)
		api.GET("/eventos", h.ListarEventos)
		api.GET("/eventos/:id", h.GetEvento)
		api.PUT("/eventos/:id", h.AtualizarEvento)
		api.DELETE("/eventos/:id", h.ExcluirEvento)

		// Cadastros
		api.POST("/cadastros", h.CriarCadastro)
		api.GET("/cadastros", h.ListarCadastros)
		api.GET("/cadastros/:id", h.GetCadastro)
		api.PUT("/cadastros/:id", h.AtualizarCadastro)
		api.PATCH("/cadastros/:id/status", h.AlterarStatus)
		api.DELETE("/cadastros/:id", h.ExcluirCadastro)

		// Documentos
		api.POST("/documentos", h.UploadDocumento)

		// Backup
		api.GET("/backup/export", h.ExportarBackup)
		api.POST("/backup/import", h.ImportarBackup)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
