package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartcalda-api/internal/application/dto"
	"github.com/jhoicas/smartcalda-api/internal/application/inventory"
	"github.com/jhoicas/smartcalda-api/internal/application/order"
	appparcela "github.com/jhoicas/smartcalda-api/internal/application/parcela"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// OrderHandler órdenes de servicio, alta de sus parcelas y reposición.
type OrderHandler struct {
	orders        *order.OrderUseCase
	parcelas      *appparcela.ParcelaUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *order.OrderUseCase, parcelas *appparcela.ParcelaUseCase, replenishment *inventory.ReplenishmentUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, parcelas: parcelas, replenishment: replenishment}
}

// Create godoc
// @Summary      Crear orden de servicio
// @Description  Queda en AWAITING_INFO si faltan calda, talhões o insumos; si no, en PENDING.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "cabecera de la orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o, err := h.orders.Create(c.Context(), toOrderInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(o, nil))
}

// Update godoc
// @Summary      Editar orden de servicio (solo AWAITING_INFO o PENDING)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la orden"
// @Param        body  body  dto.OrderRequest  true  "cabecera de la orden"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o, err := h.orders.Update(c.Context(), c.Params("id"), toOrderInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderResponse(o, nil))
}

// Get godoc
// @Summary      Obtener orden con sus parcelas
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	detail, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderResponse(detail.Order, detail.Parcelas))
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.orders.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ListResponse[dto.OrderResponse]{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range list {
		out.Items = append(out.Items, toOrderResponse(o, nil))
	}
	return c.JSON(out)
}

// PreviewParcela godoc
// @Summary      Calcular una carga sin guardarla
// @Tags         parcelas
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la orden"
// @Param        body  body  dto.ParcelaRequest  true  "mezclador, camión y capacidad"
// @Success      200   {object}  dto.ParcelaPlanDTO
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/parcelas/preview [post]
func (h *OrderHandler) PreviewParcela(c *fiber.Ctx) error {
	var in dto.ParcelaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	spec, err := toLoadSpec(in)
	if err != nil {
		return writeError(c, err)
	}
	plan, err := h.parcelas.Preview(c.Context(), c.Params("id"), spec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPlanDTO(plan))
}

// CreateParcela godoc
// @Summary      Guardar una parcela (dispatch=true la envía al supervisorio)
// @Tags         parcelas
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la orden"
// @Param        body  body  dto.ParcelaRequest  true  "mezclador, camión y capacidad"
// @Success      201   {object}  dto.ParcelaDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/parcelas [post]
func (h *OrderHandler) CreateParcela(c *fiber.Ctx) error {
	var in dto.ParcelaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	spec, err := toLoadSpec(in)
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.parcelas.Create(c.Context(), appparcela.CreateInput{
		OrderID:  c.Params("id"),
		LoadSpec: spec,
		Dispatch: in.Dispatch,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toParcelaDTO(p))
}

// Replenishment godoc
// @Summary      Traslados sugeridos para cubrir lo que resta de la orden
// @Description  Compara la necesidad pendiente de cada registro técnico/fraccionado con su saldo y descompone el faltante en envases.
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/replenishment [get]
func (h *OrderHandler) Replenishment(c *fiber.Ctx) error {
	suggestions, err := h.replenishment.SuggestForOrder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toReplenishmentDTOs(suggestions))
}

func toOrderInput(in dto.OrderRequest) order.OrderInput {
	out := order.OrderInput{
		OrderNumber:   in.OrderNumber,
		CostCenterID:  in.CostCenterID,
		OperationID:   in.OperationID,
		ResponsibleID: in.ResponsibleID,
		FarmID:        in.FarmID,
		Section:       in.Section,
		CaldaPerHa:    in.CaldaPerHa,
	}
	if in.GeneratedDate != nil {
		out.GeneratedDate = in.GeneratedDate.In(time.UTC)
	}
	for _, p := range in.Plots {
		out.Plots = append(out.Plots, entity.OrderPlot{FarmID: p.FarmID, PlotID: p.PlotID})
	}
	for _, i := range in.Inputs {
		out.Inputs = append(out.Inputs, entity.OrderInput{StockRecordID: i.StockRecordID, ItemID: i.ItemID, DosePerHa: i.DosePerHa})
	}
	return out
}

func toLoadSpec(in dto.ParcelaRequest) (appparcela.LoadSpec, error) {
	spec := appparcela.LoadSpec{
		MixerID:             in.MixerID,
		TruckID:             in.TruckID,
		TruckCapacity:       in.TruckCapacity,
		OverrideFefoWarning: in.OverrideFefoWarning,
	}
	for _, k := range in.PrimaryEntries {
		key, err := entity.NewEntryKey(k.NoteID, k.ItemID, k.LotCode)
		if err != nil {
			return appparcela.LoadSpec{}, err
		}
		spec.PrimaryEntries = append(spec.PrimaryEntries, key)
	}
	return spec, nil
}
