// Package api wraps the platform's REST endpoints with typed services.
// Services carry no business logic: they validate outgoing payloads,
// issue the request through the transport layer and decode the result.
package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/erp/console/transport"
)

// validate checks outgoing payload structs before they hit the wire,
// the console's stand-in for client-side form validation
var validate = validator.New(validator.WithRequiredStructEnabled())

func checkPayload(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("invalid request payload: %w", err)
	}
	return nil
}

// Services bundles every resource service over one transport client
type Services struct {
	Auth         *AuthService
	Identity     *IdentityService
	Company      *CompanyService
	Catalog      *CatalogService
	Inventory    *InventoryService
	Trade        *TradeService
	POS          *POSService
	Logistics    *LogisticsService
	Partner      *PartnerService
	Report       *ReportService
	Notification *NotificationService
	Admin        *AdminService
	Apps         *AppsService
}

// New builds the service set
func New(t *transport.Client, log *zap.Logger) *Services {
	return &Services{
		Auth:         &AuthService{t: t},
		Identity:     &IdentityService{t: t},
		Company:      &CompanyService{t: t},
		Catalog:      &CatalogService{t: t, log: log.Named("catalog")},
		Inventory:    &InventoryService{t: t},
		Trade:        &TradeService{t: t},
		POS:          &POSService{t: t},
		Logistics:    &LogisticsService{t: t},
		Partner:      &PartnerService{t: t},
		Report:       &ReportService{t: t},
		Notification: &NotificationService{t: t},
		Admin:        &AdminService{t: t},
		Apps:         &AppsService{t: t},
	}
}
