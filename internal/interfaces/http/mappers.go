package http

import (
	"github.com/jhoicas/smartcalda-api/internal/application/dto"
	"github.com/jhoicas/smartcalda-api/internal/application/inventory"
	appparcela "github.com/jhoicas/smartcalda-api/internal/application/parcela"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

func toStockEntryDTO(e *entity.StockEntry) dto.StockEntryDTO {
	out := dto.StockEntryDTO{
		EntryRef:        e.Key().String(),
		NoteID:          e.NoteID,
		SupplierID:      e.SupplierID,
		EntryDate:       e.EntryDate,
		ItemID:          e.ItemID,
		LotCode:         e.LotCode,
		ReceivedQty:     e.ReceivedQty,
		Unit:            e.Unit,
		PackageType:     e.PackageType,
		PackageCount:    e.PackageCount,
		PackageCapacity: e.PackageCapacity,
		CurrentBalance:  e.CurrentBalance,
		LocationCode:    e.LocationCode,
		Active:          e.Active,
	}
	if !e.ExpiryDate.IsZero() {
		expiry := e.ExpiryDate
		out.ExpiryDate = &expiry
	}
	return out
}

func toTierRecordDTO(r *entity.TierStockRecord) dto.TierStockRecordDTO {
	return dto.TierStockRecordDTO{
		RecordID:         r.RecordID,
		Tier:             string(r.Tier),
		ItemID:           r.ItemID,
		LotCode:          r.LotCode,
		LocationID:       r.LocationID,
		MovedQty:         r.MovedQty,
		Unit:             r.Unit,
		AvailableBalance: r.AvailableBalance,
		UsageDate:        r.UsageDate,
		SourceTier:       string(r.SourceTier),
		SourceRef:        r.SourceRef,
	}
}

func toMovementDTO(m *entity.InventoryMovement) dto.InventoryMovementDTO {
	return dto.InventoryMovementDTO{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		Type:          m.Type,
		ItemID:        m.ItemID,
		LotCode:       m.LotCode,
		SourceTier:    string(m.SourceTier),
		SourceRef:     m.SourceRef,
		DestTier:      string(m.DestTier),
		DestRef:       m.DestRef,
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		ParcelaID:     m.ParcelaID,
		CreatedAt:     m.CreatedAt,
	}
}

func toMovedInputDTOs(in []entity.MovedInput) []dto.MovedInputDTO {
	out := make([]dto.MovedInputDTO, 0, len(in))
	for _, m := range in {
		out = append(out, dto.MovedInputDTO{
			StockRecordID: m.StockRecordID,
			ItemID:        m.ItemID,
			Quantity:      m.Quantity,
			Unit:          m.Unit,
			SourceTier:    string(m.SourceTier),
			DestTier:      string(m.DestTier),
			SourceRef:     m.SourceRef,
		})
	}
	return out
}

func toParcelaDTO(p *entity.Parcela) dto.ParcelaDTO {
	return dto.ParcelaDTO{
		ID:                   p.ID,
		OrderID:              p.OrderID,
		MixerID:              p.MixerID,
		TruckID:              p.TruckID,
		TruckCapacity:        p.TruckCapacity,
		MixProportionPercent: p.MixProportionPercent,
		MovedInputs:          toMovedInputDTOs(p.MovedInputs),
		Status:               string(p.Status),
		ProgressShare:        p.ProgressShare,
		CreatedAt:            p.CreatedAt,
		StartedAt:            p.StartedAt,
		FinishedAt:           p.FinishedAt,
	}
}

func toOrderResponse(o *entity.ServiceOrder, parcelas []*entity.Parcela) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CostCenterID:    o.CostCenterID,
		OperationID:     o.OperationID,
		GeneratedDate:   o.GeneratedDate,
		ResponsibleID:   o.ResponsibleID,
		FarmID:          o.FarmID,
		Section:         o.Section,
		Plots:           make([]dto.OrderPlotDTO, 0, len(o.Plots)),
		Inputs:          make([]dto.OrderInputDTO, 0, len(o.Inputs)),
		CaldaPerHa:      o.CaldaPerHa,
		Status:          string(o.Status),
		ProgressPercent: o.ProgressPercent,
		StartedAt:       o.StartedAt,
		FinishedAt:      o.FinishedAt,
	}
	for _, p := range o.Plots {
		out.Plots = append(out.Plots, dto.OrderPlotDTO{FarmID: p.FarmID, PlotID: p.PlotID})
	}
	for _, in := range o.Inputs {
		out.Inputs = append(out.Inputs, dto.OrderInputDTO{StockRecordID: in.StockRecordID, ItemID: in.ItemID, DosePerHa: in.DosePerHa})
	}
	for _, p := range parcelas {
		out.Parcelas = append(out.Parcelas, toParcelaDTO(p))
	}
	return out
}

func toPlanDTO(plan *appparcela.Plan) dto.ParcelaPlanDTO {
	out := dto.ParcelaPlanDTO{
		TotalArea:         plan.Allocation.TotalArea,
		TotalMixRequired:  plan.Allocation.TotalMixRequired,
		ProportionPercent: plan.Allocation.ProportionPercent,
		Inputs:            make([]dto.InputPlanDTO, 0, len(plan.Inputs)),
	}
	for _, in := range plan.Inputs {
		movs := make([]dto.MovedInputDTO, 0, len(in.Movements))
		for _, m := range in.Movements {
			mov := dto.MovedInputDTO{
				StockRecordID: in.StockRecordID,
				ItemID:        in.ItemID,
				Quantity:      m.Quantity,
				Unit:          m.Unit,
				SourceTier:    string(m.Source),
				DestTier:      string(m.Dest),
			}
			if m.Source == entity.TierPrimary {
				mov.SourceRef = in.PrimaryEntry
			}
			movs = append(movs, mov)
		}
		out.Inputs = append(out.Inputs, dto.InputPlanDTO{
			StockRecordID: in.StockRecordID,
			ItemID:        in.ItemID,
			InputTotal:    in.InputTotal,
			Quantity:      in.Quantity,
			SourceTier:    string(in.SourceTier),
			PrimaryEntry:  in.PrimaryEntry,
			Movements:     movs,
		})
	}
	return out
}

func toReplenishmentDTOs(in []inventory.ReplenishmentSuggestion) []dto.ReplenishmentSuggestionDTO {
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(in))
	for _, s := range in {
		movs := make([]dto.MovedInputDTO, 0, len(s.Movements))
		for _, m := range s.Movements {
			mov := dto.MovedInputDTO{
				StockRecordID: s.StockRecordID,
				ItemID:        s.ItemID,
				Quantity:      m.Quantity,
				Unit:          m.Unit,
				SourceTier:    string(m.Source),
				DestTier:      string(m.Dest),
			}
			if m.Source == entity.TierPrimary {
				mov.SourceRef = s.PrimaryEntry
			}
			movs = append(movs, mov)
		}
		out = append(out, dto.ReplenishmentSuggestionDTO{
			Priority:         s.Priority,
			StockRecordID:    s.StockRecordID,
			ItemID:           s.ItemID,
			Unit:             s.Unit,
			RecordTier:       string(s.RecordTier),
			SourceTier:       string(s.SourceTier),
			RemainingNeed:    s.RemainingNeed,
			AvailableBalance: s.AvailableBalance,
			Shortfall:        s.Shortfall,
			PrimaryEntry:     s.PrimaryEntry,
			Movements:        movs,
		})
	}
	return out
}
