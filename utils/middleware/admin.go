package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminAuditLog records an audit entry for an admin action once the handler
// has run. Must be mounted after RequireAdmin.
func AdminAuditLog(db *gorm.DB, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok || !principal.IsAdmin() {
			return c.Next()
		}

		var payload datatypes.JSON
		if body := c.Body(); len(body) > 0 && json.Valid(body) {
			payload = datatypes.JSON(append([]byte(nil), body...))
		}

		resourceID := c.Params("id")
		if resourceID == "" && payload != nil {
			var probe struct {
				CourseID json.Number `json:"course_id"`
			}
			if json.Unmarshal(payload, &probe) == nil {
				resourceID = probe.CourseID.String()
			}
		}

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		entry := model.AdminAuditLog{
			AdminID:     principal.ID(),
			Action:      action,
			Resource:    resource,
			ResourceID:  resourceID,
			Payload:     payload,
			StatusCode:  status,
			IPAddress:   c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			Description: c.Method() + " " + c.Path(),
		}
		if dbErr := db.WithContext(c.UserContext()).Create(&entry).Error; dbErr != nil {
			logger.Warn().Err(dbErr).Str("action", action).Msg("failed to write audit log")
		}

		return err
	}
}
