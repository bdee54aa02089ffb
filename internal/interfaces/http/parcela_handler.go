package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartcalda-api/internal/application/dto"
	appparcela "github.com/jhoicas/smartcalda-api/internal/application/parcela"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// ParcelaHandler edición y transiciones de parcelas.
type ParcelaHandler struct {
	uc *appparcela.ParcelaUseCase
}

// NewParcelaHandler construye el handler.
func NewParcelaHandler(uc *appparcela.ParcelaUseCase) *ParcelaHandler {
	return &ParcelaHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener parcela
// @Tags         parcelas
// @Produce      json
// @Param        id   path  string  true  "ID de la parcela"
// @Success      200  {object}  dto.ParcelaDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parcelas/{id} [get]
func (h *ParcelaHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toParcelaDTO(p))
}

// Edit godoc
// @Summary      Cambiar mezclador, camión o capacidad (solo ON_TRUCK)
// @Tags         parcelas
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la parcela"
// @Param        body  body  dto.ParcelaRequest  true  "campos vacíos conservan el valor actual"
// @Success      200   {object}  dto.ParcelaDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/parcelas/{id} [put]
func (h *ParcelaHandler) Edit(c *fiber.Ctx) error {
	var in dto.ParcelaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	spec, err := toLoadSpec(in)
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Edit(c.Context(), c.Params("id"), spec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toParcelaDTO(p))
}

// Dispatch godoc
// @Summary      Enviar la parcela al supervisorio (ON_TRUCK -> IN_PRODUCTION)
// @Tags         parcelas
// @Produce      json
// @Param        id   path  string  true  "ID de la parcela"
// @Success      200  {object}  dto.ParcelaDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/parcelas/{id}/dispatch [post]
func (h *ParcelaHandler) Dispatch(c *fiber.Ctx) error {
	return h.apply(c, h.uc.Dispatch)
}

// Cancel godoc
// @Summary      Cancelar parcela (solo desde ON_TRUCK)
// @Tags         parcelas
// @Produce      json
// @Param        id   path  string  true  "ID de la parcela"
// @Success      200  {object}  dto.ParcelaDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/parcelas/{id}/cancel [post]
func (h *ParcelaHandler) Cancel(c *fiber.Ctx) error {
	return h.apply(c, h.uc.Cancel)
}

// Pause, Resume, Block y Complete los invoca el supervisorio.
func (h *ParcelaHandler) Pause(c *fiber.Ctx) error    { return h.apply(c, h.uc.Pause) }
func (h *ParcelaHandler) Resume(c *fiber.Ctx) error   { return h.apply(c, h.uc.Resume) }
func (h *ParcelaHandler) Block(c *fiber.Ctx) error    { return h.apply(c, h.uc.Block) }
func (h *ParcelaHandler) Complete(c *fiber.Ctx) error { return h.apply(c, h.uc.Complete) }

func (h *ParcelaHandler) apply(c *fiber.Ctx, op func(context.Context, string) (*entity.Parcela, error)) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	p, err := op(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toParcelaDTO(p))
}
