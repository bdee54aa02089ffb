package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/memory"
)

// seedDemo carga una hacienda con dos talhões, un camión, un mezclador y stock de glifosato
// en los tres tiers, suficiente para recorrer el flujo completo de una orden.
func seedDemo(ctx context.Context, store *memory.Store) error {
	d := decimal.RequireFromString
	now := time.Now().UTC()

	store.AddFarm(entity.Farm{ID: "F1", Name: "Fazenda Santa Rita"})
	store.AddPlot(entity.Plot{ID: "T1", FarmID: "F1", Name: "Talhão 1", Area: d("10")})
	store.AddPlot(entity.Plot{ID: "T2", FarmID: "F1", Name: "Talhão 2", Area: d("5")})
	store.AddTruck(entity.Truck{ID: "C1", Plate: "ABC1D23", RatedCapacity: d("1000")})
	store.AddMixer(entity.Mixer{ID: "M1", Name: "SmartCalda 1", LocationID: "GALPAO-1"})

	repos := store.Repositories()
	entries := []*entity.StockEntry{
		{
			NoteID: "NF-1001", SupplierID: "SUP-1", EntryDate: now.AddDate(0, -2, 0),
			ItemID: "glifosato", LotCode: "GLI-A", ReceivedQty: d("200"), CurrentBalance: d("200"), Unit: "L",
			ExpiryDate: now.AddDate(0, 6, 0), PackageType: "bidón", PackageCount: 40, PackageCapacity: d("5"),
			LocationCode: "ALM-01", Active: true,
		},
		{
			NoteID: "NF-1002", SupplierID: "SUP-1", EntryDate: now.AddDate(0, -1, 0),
			ItemID: "glifosato", LotCode: "GLI-B", ReceivedQty: d("100"), CurrentBalance: d("100"), Unit: "L",
			ExpiryDate: now.AddDate(1, 0, 0), PackageType: "bidón", PackageCount: 20, PackageCapacity: d("5"),
			LocationCode: "ALM-01", Active: true,
		},
	}
	for _, e := range entries {
		if err := repos.Entries.Create(ctx, e); err != nil {
			return err
		}
	}

	records := []*entity.TierStockRecord{
		{
			RecordID: "TEC-GLI-1", Tier: entity.TierTechnical, ItemID: "glifosato", LotCode: "GLI-A",
			LocationID: "M1", MovedQty: d("60"), AvailableBalance: d("60"), Unit: "L",
			SourceTier: entity.TierPrimary, SourceRef: entries[0].Key().String(), CreatedAt: now,
		},
		{
			RecordID: "FRA-GLI-1", Tier: entity.TierFractional, ItemID: "glifosato", LotCode: "GLI-A",
			LocationID: "GALPAO-1", MovedQty: d("10"), AvailableBalance: d("10"), Unit: "L",
			SourceTier: entity.TierPrimary, SourceRef: entries[0].Key().String(), CreatedAt: now,
		},
	}
	for _, r := range records {
		if err := repos.TierRecords.Create(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
