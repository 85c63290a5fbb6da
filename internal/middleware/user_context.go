package middleware

import (
	"certbody/internal/database"
	"certbody/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectUser кладёт пользователя из сессии в контекст под ключом
// "CurrentUser". Сессию удалённого пользователя сбрасывает.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get("user_id").(uint); ok && uid > 0 {
			var user models.User
			if err := database.DB.First(&user, uid).Error; err == nil {
				c.Set("CurrentUser", user)
			} else {
				sess.Clear()
				_ = sess.Save()
			}
		}

		c.Next()
	}
}
