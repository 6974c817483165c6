package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/dto"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/naf-scheduler/internal/middleware"
	usecase "github.com/BruksfildServices01/naf-scheduler/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	list     *usecase.ListServices
	get      *usecase.GetService
	create   *usecase.CreateService
	update   *usecase.UpdateService
	remove   *usecase.DeleteService
	setImage *usecase.SetServiceImage

	maxUpload int64
}

func NewServiceHandler(
	list *usecase.ListServices,
	get *usecase.GetService,
	create *usecase.CreateService,
	update *usecase.UpdateService,
	remove *usecase.DeleteService,
	setImage *usecase.SetServiceImage,
	maxUploadBytes int64,
) *ServiceHandler {
	return &ServiceHandler{
		list:      list,
		get:       get,
		create:    create,
		update:    update,
		remove:    remove,
		setImage:  setImage,
		maxUpload: maxUploadBytes,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name        string `json:"nome" binding:"required"`
	Description string `json:"descricao"`
	DurationMin int    `json:"duracao_minutos" binding:"required,gt=0"`
	Active      *bool  `json:"ativo"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"nome"`
	Description *string `json:"descricao"`
	DurationMin *int    `json:"duracao_minutos"`
	Active      *bool   `json:"ativo"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	active, ok := queryBool(c, "ativo")
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		Active: active,
		Query:  c.Query("q"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	s, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.create.Execute(c.Request.Context(), middleware.Actor(c).UserID, usecase.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Active:      req.Active,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.update.Execute(c.Request.Context(), middleware.Actor(c).UserID, id, usecase.UpdateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Active:      req.Active,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.ServiceUpdateResponse{
		Service:   res.Service,
		Cancelled: res.Cancelled,
	})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.Actor(c).UserID, id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// UploadImage recebe multipart com o arquivo no campo "imagem".
func (h *ServiceHandler) UploadImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	fh, err := c.FormFile("imagem")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "image_too_large", "Imagem maior que o limite permitido.")
			return
		}
		httperr.BadRequest(c, "invalid_image", "Envie a imagem no campo 'imagem'.")
		return
	}

	file, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Não foi possível ler a imagem.")
		return
	}
	defer file.Close()

	s, err := h.setImage.Execute(c.Request.Context(), middleware.Actor(c).UserID, id, file)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}
