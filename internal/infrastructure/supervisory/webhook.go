// Package supervisory avisa al sistema supervisorio que una parcela quedó lista para mezclar.
package supervisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/smartcalda-api/internal/application/ports"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/pkg/logger"
)

var (
	_ ports.SupervisoryNotifier = (*WebhookNotifier)(nil)
	_ ports.SupervisoryNotifier = (*LogNotifier)(nil)
)

// DispatchEvent cuerpo del aviso de despacho.
type DispatchEvent struct {
	ParcelaID            string              `json:"parcela_id"`
	OrderID              string              `json:"order_id"`
	MixerID              string              `json:"mixer_id"`
	TruckID              string              `json:"truck_id"`
	TruckCapacity        string              `json:"truck_capacity"`
	MixProportionPercent string              `json:"mix_proportion_percent"`
	StartedAt            *time.Time          `json:"started_at"`
	MovedInputs          []entity.MovedInput `json:"moved_inputs"`
}

// NewDispatchEvent arma el aviso a partir de la parcela despachada.
func NewDispatchEvent(p *entity.Parcela) DispatchEvent {
	return DispatchEvent{
		ParcelaID:            p.ID,
		OrderID:              p.OrderID,
		MixerID:              p.MixerID,
		TruckID:              p.TruckID,
		TruckCapacity:        p.TruckCapacity.String(),
		MixProportionPercent: p.MixProportionPercent.String(),
		StartedAt:            p.StartedAt,
		MovedInputs:          p.MovedInputs,
	}
}

// WebhookNotifier publica el aviso con un POST JSON.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier construye el adaptador; timeout acota cada llamada.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NotifyDispatch envía el aviso. Cualquier respuesta fuera de 2xx es error.
func (n *WebhookNotifier) NotifyDispatch(ctx context.Context, p *entity.Parcela) error {
	body, err := json.Marshal(NewDispatchEvent(p))
	if err != nil {
		return fmt.Errorf("supervisorio: serializar aviso: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("supervisorio: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("idempotency-key", p.ID)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("supervisorio: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("supervisorio: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("supervisorio: HTTP %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// LogNotifier solo registra el despacho; se usa cuando no hay SUPERVISORY_URL.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("supervisory")}
}

func (n *LogNotifier) NotifyDispatch(_ context.Context, p *entity.Parcela) error {
	n.log.Info().
		Str("parcela_id", p.ID).
		Str("order_id", p.OrderID).
		Str("mixer_id", p.MixerID).
		Int("inputs", len(p.MovedInputs)).
		Msg("parcela lista para el supervisorio")
	return nil
}
