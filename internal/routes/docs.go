package routes

import (
	"sort"

	"github.com/gofiber/fiber/v2"
)

// docsHandler lists the registered routes as JSON. Development convenience only;
// RegisterRoutes mounts it solely when docs are enabled for the environment.
func docsHandler(app *fiber.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type routeEntry struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		}

		entries := []routeEntry{}
		for _, group := range app.Stack() {
			for _, route := range group {
				if route.Method == "HEAD" || route.Path == "/" {
					continue
				}
				entries = append(entries, routeEntry{Method: route.Method, Path: route.Path})
			}
		}

		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Path == entries[j].Path {
				return entries[i].Method < entries[j].Method
			}
			return entries[i].Path < entries[j].Path
		})

		return c.JSON(fiber.Map{"routes": entries})
	}
}
