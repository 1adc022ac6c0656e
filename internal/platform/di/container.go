// internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"net/http"

	"tradespace/internal/adapters/in/http/handler"
	"tradespace/internal/adapters/in/http/middleware"
	outfs "tradespace/internal/adapters/out/firestore"
	outgcs "tradespace/internal/adapters/out/gcs"
	outmail "tradespace/internal/adapters/out/mail"
	outpdf "tradespace/internal/adapters/out/pdf"
	query "tradespace/internal/application/query"
	usecase "tradespace/internal/application/usecase"
	memdom "tradespace/internal/domain/membership"
	shared "tradespace/internal/platform/di/shared"
)

// Container wires repositories -> usecases -> queries -> handlers.
// It borrows clients from shared.Infra and owns nothing Close-managed.
type Container struct {
	infra *shared.Infra

	// handlers
	tradespaces http.Handler
	cart        http.Handler
	checkout    http.Handler
	forums      http.Handler
	events      http.Handler
}

func NewContainer(_ context.Context, infra *shared.Infra) (*Container, error) {
	c := &Container{infra: infra}

	// repositories
	tsRepo := outfs.NewTradespaceRepositoryFS(infra.Firestore)
	memberRepo := outfs.NewMembershipRepositoryFS(infra.Firestore)
	cartRepo := outfs.NewCartRepositoryFS(infra.Firestore)
	listingRepo := outfs.NewListingRepositoryFS(infra.Firestore)
	forumRepo := outfs.NewForumRepositoryFS(infra.Firestore)

	images := outgcs.NewImageRepositoryGCS(infra.GCS, infra.ImageBucket)
	formatter := outpdf.NewInvoiceFormatterPDF()

	// mail is optional: without a key checkout still works, it just
	// skips the invoice mail
	var mailer usecase.InvoiceMailer
	if infra.SendGridAPIKey != "" {
		mailer = outmail.NewInvoiceMailer(outmail.NewSendGridClient(infra.SendGridAPIKey, infra.SendGridFrom))
	} else {
		log.Printf("[di] invoice mailer disabled (no SendGrid key)")
	}

	// usecases
	tsUC := usecase.NewTradespaceUsecase(tsRepo, images)
	memberUC := usecase.NewMembershipUsecase(memberRepo, memdom.NopNotifier{})
	cartUC := usecase.NewCartUsecase(cartRepo)
	listingUC := usecase.NewListingUsecase(listingRepo, images)
	forumUC := usecase.NewForumUsecase(forumRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, formatter, mailer)

	// queries
	tsQ := query.NewTradespaceQueryService(tsRepo, memberRepo)
	cartQ := query.NewCartQueryService(cartRepo)
	listingQ := query.NewListingQueryService(listingRepo)
	forumQ := query.NewForumQueryService(forumRepo)

	// handlers
	c.tradespaces = handler.NewTradespaceHandler(tsUC, memberUC, listingUC, tsQ, listingQ)
	c.cart = handler.NewCartHandler(cartUC, cartQ)
	c.checkout = handler.NewCheckoutHandler(checkoutUC)
	c.forums = handler.NewForumHandler(forumUC, forumQ)
	c.events = handler.NewEventsHandler(cartQ, listingQ, forumQ)

	return c, nil
}

// Router builds the API mux. Mixed subtrees (public reads, authed writes)
// get optional auth; cart/checkout are strictly authenticated.
func (c *Container) Router() *http.ServeMux {
	auth := &middleware.AuthMiddleware{FirebaseAuth: c.infra.FirebaseAuth}

	mux := http.NewServeMux()

	registerSubtree(mux, "/tradespaces", auth.OptionalHandler(c.tradespaces))
	registerSubtree(mux, "/forums", auth.OptionalHandler(c.forums))
	registerSubtree(mux, "/events", auth.OptionalHandler(c.events))

	registerSubtree(mux, "/cart", auth.Handler(c.cart))
	registerSubtree(mux, "/checkout", auth.Handler(c.checkout))

	return mux
}

func registerSubtree(mux *http.ServeMux, prefix string, h http.Handler) {
	mux.Handle(prefix, h)
	mux.Handle(prefix+"/", h)
}
