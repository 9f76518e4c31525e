// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"
	"net/http"

	inhttp "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/handler"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/middleware"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/webhook"
	outfs "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/out/firestore"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/out/gcs"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/out/mail"
	outstripe "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/out/stripe"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/query/storefront"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
)

// Container wires repositories, usecases and handlers on top of Infra.
type Container struct {
	Infra *Infra

	// usecases (exported for handler tests and future transports)
	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	FinalizeUC *usecase.OrderFinalizeUsecase
	OrderUC    *usecase.OrderUsecase
	StoreUC    *usecase.StoreUsecase
	ListingUC  *usecase.ListingUsecase
	ReviewUC   *usecase.ReviewUsecase
	UserUC     *usecase.UserUsecase

	CatalogQ *storefront.CatalogQuery

	webhookParser *outstripe.WebhookParser
}

// NewContainer builds the full object graph. Optional dependencies
// (Stripe, SendGrid, GCS) degrade to disabled features with a WARN.
func NewContainer(ctx context.Context, infra *Infra) (*Container, error) {
	if infra == nil || infra.Firestore == nil {
		return nil, errors.New("di: infra with firestore client is required")
	}

	c := &Container{Infra: infra}

	// repositories
	storeRepo := outfs.NewStoreRepositoryFS(infra.Firestore)
	listingRepo := outfs.NewListingRepositoryFS(infra.Firestore)
	cartRepo := outfs.NewCartRepositoryFS(infra.Firestore)
	orderRepo := outfs.NewOrderRepositoryFS(infra.Firestore)
	reviewRepo := outfs.NewReviewRepositoryFS(infra.Firestore)
	userRepo := outfs.NewUserRepositoryFS(infra.Firestore)
	finalizeTx := outfs.NewCheckoutTxFS(infra.Firestore)

	// payment provider
	var payments usecase.PaymentIntents
	if infra.StripeSecretKey != "" {
		pc, err := outstripe.NewPaymentIntentsClient(infra.StripeSecretKey)
		if err != nil {
			return nil, err
		}
		payments = pc
	} else {
		log.Printf("[di] WARN: stripe secret key missing; checkout is disabled")
	}

	if infra.StripeWebhookSecret != "" {
		c.webhookParser = outstripe.NewWebhookParser(infra.StripeWebhookSecret)
	} else {
		log.Printf("[di] WARN: stripe webhook secret missing; webhook route is disabled")
	}

	// order confirmation mail (optional)
	var mailer usecase.OrderMailer
	if infra.Config != nil && infra.Config.SendGridAPIKey != "" && infra.Config.SendGridFrom != "" {
		mailer = mail.NewOrderMailer(mail.NewSendGridClient(infra.Config.SendGridAPIKey), infra.Config.SendGridFrom)
	} else {
		log.Printf("[di] WARN: sendgrid not configured; order confirmation mail disabled")
	}

	// listing images (optional)
	var images usecase.ListingImageStore
	if infra.GCS != nil && infra.ListingImageBucket != "" {
		images = gcs.NewListingImageStoreGCS(infra.GCS, infra.ListingImageBucket)
	}

	// usecases
	c.CartUC = usecase.NewCartUsecase(cartRepo, listingRepo)
	c.CheckoutUC = usecase.NewCheckoutUsecase(cartRepo, listingRepo, storeRepo, payments)
	c.FinalizeUC = usecase.NewOrderFinalizeUsecase(cartRepo, listingRepo, storeRepo, orderRepo, userRepo, finalizeTx, mailer)
	c.OrderUC = usecase.NewOrderUsecase(orderRepo)
	c.StoreUC = usecase.NewStoreUsecase(storeRepo, userRepo)
	c.ListingUC = usecase.NewListingUsecase(listingRepo, storeRepo, images)
	c.ReviewUC = usecase.NewReviewUsecase(reviewRepo, storeRepo, userRepo)
	c.UserUC = usecase.NewUserUsecase(userRepo)

	c.CatalogQ = storefront.NewCatalogQuery(storeRepo, listingRepo, reviewRepo)

	return c, nil
}

// Register builds all handlers, wraps the authenticated ones and
// registers every route onto mux.
func Register(mux *http.ServeMux, c *Container) {
	if mux == nil || c == nil {
		return
	}

	userAuth := &middleware.UserAuthMiddleware{FirebaseAuth: c.Infra.FirebaseAuth}
	if c.Infra.FirebaseAuth == nil {
		log.Printf("[di] WARN: firebase auth client missing; protected routes will 401")
	}

	requireAuth := func(h http.Handler) http.Handler {
		if h == nil {
			return nil
		}
		return userAuth.Handler(h)
	}

	orderHandler := handler.NewOrderHandler(c.OrderUC)

	var stripeWH http.Handler
	if c.webhookParser != nil {
		stripeWH = webhook.NewStripeWebhookHandler(c.webhookParser, c.FinalizeUC)
	}

	inhttp.Register(mux, inhttp.Deps{
		// /stores mixes public reads with vendor writes; the handler
		// checks the uid on the write paths.
		Store: userAuth.OptionalHandler(handler.NewStoreHandler(c.StoreUC, c.ReviewUC, c.CatalogQ)),

		Cart:         requireAuth(handler.NewCartHandler(c.CartUC)),
		Checkout:     requireAuth(handler.NewCheckoutHandler(c.CheckoutUC)),
		MeOrders:     requireAuth(orderHandler),
		VendorOrders: requireAuth(orderHandler),
		Listing:      requireAuth(handler.NewListingHandler(c.ListingUC)),
		Profile:      requireAuth(handler.NewProfileHandler(c.UserUC)),

		StripeWebhook: stripeWH,
	})
}
