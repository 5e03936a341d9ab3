package payment

import (
	"context"

	"streambook/models"
)

// Gateway opens charges with the hosted payment provider. The asynchronous
// outcome of a charge arrives out-of-band (webhook) as a models.GatewayResult;
// exactly one result is delivered per order.
type Gateway interface {
	CreateCharge(ctx context.Context, req models.ChargeRequest) (*models.ChargeToken, error)
}
