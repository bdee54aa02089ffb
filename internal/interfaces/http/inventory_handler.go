package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartcalda-api/internal/application/dto"
	"github.com/jhoicas/smartcalda-api/internal/application/inventory"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del ledger de inventario en tres tiers.
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListEntries godoc
// @Summary      Lotes retirables de un ítem en orden FEFO
// @Tags         inventory
// @Produce      json
// @Param        itemId  path  string  true  "ID del ítem"
// @Success      200  {array}   dto.StockEntryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{itemId}/entries [get]
func (h *InventoryHandler) ListEntries(c *fiber.Ctx) error {
	list, err := h.uc.ListWithdrawableEntries(c.Context(), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockEntryDTO, 0, len(list))
	for _, e := range list {
		out = append(out, toStockEntryDTO(e))
	}
	return c.JSON(out)
}

// Withdraw godoc
// @Summary      Retirar de un lote del almacén principal
// @Description  Si el lote no es el primero en orden FEFO se exige override_fefo_warning=true.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WithdrawRequest  true  "lote y cantidad"
// @Success      200   {object}  dto.StockEntryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/withdrawals [post]
func (h *InventoryHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	key, err := entity.NewEntryKey(in.Entry.NoteID, in.Entry.ItemID, in.Entry.LotCode)
	if err != nil {
		return writeError(c, err)
	}
	e, err := h.uc.WithdrawSelected(c.Context(), inventory.WithdrawInput{
		Key:                 key,
		Quantity:            in.Quantity,
		OverrideFefoWarning: in.OverrideFefoWarning,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockEntryDTO(e))
}

// Transfer godoc
// @Summary      Trasladar stock a técnico o fraccionado
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "origen, destino y cantidad"
// @Success      201   {object}  dto.TierStockRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := inventory.TransferInput{
		SourceTier:          entity.Tier(strings.ToUpper(in.SourceTier)),
		SourceRecordID:      in.SourceRecordID,
		DestTier:            entity.Tier(strings.ToUpper(in.DestTier)),
		DestLocation:        in.DestLocation,
		Quantity:            in.Quantity,
		OverrideFefoWarning: in.OverrideFefoWarning,
	}
	if input.SourceTier == entity.TierPrimary {
		if in.SourceEntry == nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_REQUIRED_FIELD", Message: "source_entry es requerido"})
		}
		key, err := entity.NewEntryKey(in.SourceEntry.NoteID, in.SourceEntry.ItemID, in.SourceEntry.LotCode)
		if err != nil {
			return writeError(c, err)
		}
		input.SourceKey = key
	}
	rec, err := h.uc.Transfer(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTierRecordDTO(rec))
}

// ListTierRecords godoc
// @Summary      Registros con saldo de un tier técnico o fraccionado
// @Tags         inventory
// @Produce      json
// @Param        tier    path  string  true  "TECHNICAL | FRACTIONAL"
// @Param        itemId  path  string  true  "ID del ítem"
// @Success      200  {array}   dto.TierStockRecordDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/tiers/{tier}/items/{itemId}/records [get]
func (h *InventoryHandler) ListTierRecords(c *fiber.Ctx) error {
	tier := entity.Tier(strings.ToUpper(c.Params("tier")))
	list, err := h.uc.ListTierRecords(c.Context(), tier, c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.TierStockRecordDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toTierRecordDTO(r))
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         inventory
// @Produce      json
// @Param        itemId  path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.InventoryMovementDTO]
// @Router       /api/inventory/items/{itemId}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.ListMovements(c.Context(), c.Params("itemId"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ListResponse[dto.InventoryMovementDTO]{
		Items: make([]dto.InventoryMovementDTO, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, toMovementDTO(m))
	}
	return c.JSON(out)
}
