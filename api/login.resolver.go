package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	AccessCode string `json:"accessCode"`
}

type loginResponse struct {
	SessionToken string `json:"sessionToken"`
}

// login is the shared-secret gate. Anyone with the access code gets a fresh
// session; there are no user accounts behind it.
func (m *ApiHandler) login(c *gin.Context) {
	var requestBody loginRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	if requestBody.AccessCode == "" || requestBody.AccessCode != m.AccessCode {
		returnErrorJsonCode(fmt.Errorf("incorrect access code"), c, 401)
		return
	}

	session, err := m.SessionRepository.Add()
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to create session: %w", err), c)
		return
	}

	token, err := signSessionToken(session.ID, m.JwtSigningSecret, sessionTokenTtl)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, loginResponse{SessionToken: token})
}
