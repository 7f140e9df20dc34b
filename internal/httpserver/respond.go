package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-engine/internal/domain"
)

// renderError maps the error taxonomy onto the wire: validation failures keep
// their field map under a 422, general rejections carry a single message, and
// transport failures surface as a bad gateway. One rendering path for both
// local pre-checks and remote rejections.
func renderError(c *gin.Context, err error) {
	var rerr *domain.RemoteError
	if !errors.As(err, &rerr) {
		rerr = domain.GeneralError(err.Error())
	}
	switch rerr.Kind {
	case domain.ErrorValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": rerr.Fields})
	case domain.ErrorNetwork:
		c.JSON(http.StatusBadGateway, gin.H{"message": rerr.Message})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": rerr.Message})
	}
}
