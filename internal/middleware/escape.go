package middleware

import (
	"html"
	"net/url"

	"github.com/gin-gonic/gin"
)

// EscapeRequestData HTML-экранирует значения query-строки и формы
// на входе. JSON-тела сюда не попадают: они типизируются через DTO
// и валидатор, поштучное экранирование сломало бы разбор.
func EscapeRequestData() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		if len(query) > 0 {
			escaped := make(url.Values, len(query))
			for key, values := range query {
				for _, value := range values {
					escaped.Add(key, html.EscapeString(value))
				}
			}
			c.Request.URL.RawQuery = escaped.Encode()
		}

		if err := c.Request.ParseForm(); err == nil && len(c.Request.PostForm) > 0 {
			for key, values := range c.Request.PostForm {
				for i, value := range values {
					c.Request.PostForm[key][i] = html.EscapeString(value)
				}
			}
		}

		c.Next()
	}
}
