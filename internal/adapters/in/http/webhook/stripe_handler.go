// internal/adapters/in/http/webhook/stripe_handler.go
package webhook

import (
	"errors"
	"io"
	"log"
	"net/http"

	outstripe "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/out/stripe"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
)

// StripeWebhookHandler receives signed Stripe events. A verified
// payment_intent.succeeded triggers the order finalize; all other event
// types are acked with 204 so Stripe stops redelivering them.
//
// Finalize failures return 5xx on purpose: Stripe retries, and finalize
// is idempotent on the PaymentIntent id, so a transient Firestore error
// heals itself on redelivery.
type StripeWebhookHandler struct {
	parser   *outstripe.WebhookParser
	finalize *usecase.OrderFinalizeUsecase
}

func NewStripeWebhookHandler(parser *outstripe.WebhookParser, finalize *usecase.OrderFinalizeUsecase) http.Handler {
	return &StripeWebhookHandler{parser: parser, finalize: finalize}
}

func (h *StripeWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.parser == nil || h.finalize == nil {
		http.Error(w, "webhook handler is not configured", http.StatusInternalServerError)
		return
	}

	const maxBody = 1 << 20 // 1MB, larger than any PaymentIntent event
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	_ = r.Body.Close()

	ev, err := h.parser.ParsePaymentSucceeded(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, outstripe.ErrIgnoredEvent):
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, outstripe.ErrBadSignature):
			log.Printf("[stripe_webhook] signature verification failed")
			http.Error(w, "bad signature", http.StatusBadRequest)
		default:
			log.Printf("[stripe_webhook] parse failed err=%v", err)
			http.Error(w, "bad payload", http.StatusBadRequest)
		}
		return
	}

	o, err := h.finalize.HandlePaymentSucceeded(r.Context(), usecase.PaymentSucceededInput{
		PaymentIntentID: ev.PaymentIntentID,
		CustomerID:      ev.CustomerID,
		StoreID:         ev.StoreID,
		Amount:          ev.Amount,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrFinalizeCartGone) {
			// nothing to build the order from and no stored order;
			// retrying will not change that
			log.Printf("[stripe_webhook] cart gone intent=%s -> 204", ev.PaymentIntentID)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		log.Printf("[stripe_webhook] finalize failed intent=%s err=%v", ev.PaymentIntentID, err)
		http.Error(w, "finalize failed", http.StatusInternalServerError)
		return
	}

	log.Printf("[stripe_webhook] finalized intent=%s order=%s total=%d", ev.PaymentIntentID, o.ID, o.TotalPaid)
	w.WriteHeader(http.StatusNoContent)
}
