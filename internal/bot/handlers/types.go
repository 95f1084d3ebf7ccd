package handlers

import (
	"github.com/vladimiradmaev/diary-helper/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService  interfaces.UserServiceInterface
	DiaryService interfaces.DiaryServiceInterface
	StatsService interfaces.StatsServiceInterface
}
