package modules

import "github.com/gin-gonic/gin"

// Guards are the authentication middlewares shared by every module.
type Guards struct {
	Auth     gin.HandlerFunc
	Optional gin.HandlerFunc
}
