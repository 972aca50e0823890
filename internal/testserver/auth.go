package testserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/moneydash/moneydash/internal/models"
)

func (s *Server) issueToken() string {
	s.mu.Lock()
	serial := s.tokenSerial
	secret := s.secret
	email := s.user.Email
	s.mu.Unlock()

	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        strconv.Itoa(serial),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		panic(err)
	}

	return token
}

func (s *Server) validToken(raw string) bool {
	s.mu.Lock()
	serial := s.tokenSerial
	secret := s.secret
	s.mu.Unlock()

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	return claims.ID == strconv.Itoa(serial)
}

func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || !s.validToken(raw) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "full authentication is required"})
		return
	}

	c.Next()
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	match := req.Email == s.user.Email && req.Password == UserPassword
	user := s.user
	refreshToken := s.refreshToken
	s.mu.Unlock()

	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token:        s.issueToken(),
		RefreshToken: refreshToken,
		User:         user,
	})
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		User: models.User{ID: 2, FullName: req.FullName, Email: req.Email},
	})
}

func (s *Server) refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	s.refreshCalls++
	delay := s.refreshDelay
	current := s.refreshToken
	rotate := s.rotate
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if current == "" || req.RefreshToken != current {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token is invalid"})
		return
	}

	resp := models.RefreshResponse{Token: s.issueToken()}
	if rotate {
		rotated := uuid.NewString()
		s.mu.Lock()
		s.refreshToken = rotated
		s.mu.Unlock()
		resp.RefreshToken = rotated
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) profile(c *gin.Context) {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()

	c.JSON(http.StatusOK, user)
}

func (s *Server) updateProfileImage(c *gin.Context) {
	var req struct {
		UserID          int64  `json:"userId"`
		ProfileImageURL string `json:"profileImageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	s.user.ProfileImageURL = req.ProfileImageURL
	user := s.user
	s.mu.Unlock()

	c.JSON(http.StatusOK, user)
}
