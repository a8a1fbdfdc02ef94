package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dealbot/dealbot/types"
	"dealbot/dealbot/utils/logging"

	"go.uber.org/zap"
)

// Interpreter converts free text into a structured product query.
type Interpreter interface {
	Extract(ctx context.Context, userInput string) types.ProductQuery
}

// OfferSource obtains one marketplace's offer for a query. Lookup never
// fails; adapters degrade to the fallback record internally.
type OfferSource interface {
	SiteName() string
	Lookup(ctx context.Context, query types.ProductQuery) types.ProductOffer
}

// ReplyComposer merges the query and both offers into the final reply.
type ReplyComposer interface {
	Compose(ctx context.Context, userInput string, amazon, flipkart types.ProductOffer) (string, error)
}

const fallbackApology = "I'm sorry, I encountered an error while processing your request. Please try again with a product search."

// Pipeline runs Interpret, both marketplace lookups, then Compose. The
// two lookups run concurrently; they have no data dependency on each
// other.
type Pipeline struct {
	interpreter Interpreter
	amazon      OfferSource
	flipkart    OfferSource
	composer    ReplyComposer
}

func New(interpreter Interpreter, amazon, flipkart OfferSource, composer ReplyComposer) *Pipeline {
	return &Pipeline{
		interpreter: interpreter,
		amazon:      amazon,
		flipkart:    flipkart,
		composer:    composer,
	}
}

// Process turns a user message into a reply string. Stage failures are
// contained here: the result is always user-visible chat text, never an
// error, and the caller keeps serving subsequent requests.
func (p *Pipeline) Process(ctx context.Context, userInput string) (reply string) {
	defer logging.LogDuration(ctx, "pipeline_process")()
	defer func() {
		if r := recover(); r != nil {
			logging.ErrorLogger.Error("pipeline panic", zap.Any("recover", r))
			reply = fallbackApology
		}
	}()

	query := p.interpreter.Extract(ctx, userInput)

	var amazonOffer, flipkartOffer types.ProductOffer
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		amazonOffer = p.amazon.Lookup(gctx, query)
		return nil
	})
	g.Go(func() error {
		flipkartOffer = p.flipkart.Lookup(gctx, query)
		return nil
	})
	_ = g.Wait()

	reply, err := p.composer.Compose(ctx, userInput, amazonOffer, flipkartOffer)
	if err != nil {
		logging.ErrorLogger.Error("composer failed", zap.Error(err))
		return fmt.Sprintf("Sorry, I encountered an error while processing your request: %s", err)
	}
	return reply
}
