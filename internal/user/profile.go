package user

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/whatnew-live/sellerhub/internal/db"
)

// GetPublicProfile returns a seller's public storefront profile
// GET /user/:id/profile
func GetPublicProfile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing user id"})
	}

	var u User
	err := db.Conn.QueryRow(context.Background(), `
        SELECT id, name, role,
               COALESCE(store_name, ''), COALESCE(bio, ''), COALESCE(avatar_url, ''), created_at
        FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Role, &u.StoreName, &u.Bio, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, u)
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	StoreName string `json:"store_name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfile - PATCH /user/profile
func UpdateProfile(c echo.Context) error {
	userIDVal := c.Get("user_id")
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
		    store_name = COALESCE(NULLIF($2, ''), store_name),
		    bio = COALESCE(NULLIF($3, ''), bio),
		    avatar_url = COALESCE(NULLIF($4, ''), avatar_url)
		WHERE id = $5
	`
	_, err := db.Conn.Exec(c.Request().Context(), query, req.Name, req.StoreName, req.Bio, req.AvatarURL, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "profile updated successfully",
	})
}
