package seats

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {

	// DERIVED GRID VIEW

	rooms := rg.Group("/rooms")
	{
		rooms.GET("", controller.GetGrid) // GET /api/v1/rooms
	}

	// SEAT RECORDS

	seats := rg.Group("/seats")
	{
		seats.GET("", controller.ListSeats)               // GET /api/v1/seats
		seats.GET("/:id", controller.GetSeat)             // GET /api/v1/seats/:id
		seats.PUT("/:id", controller.SaveSeat)            // PUT /api/v1/seats/:id
		seats.PUT("/:id/status", controller.ChangeStatus) // PUT /api/v1/seats/:id/status
	}

	// EDIT SESSION (single slot)

	editor := rg.Group("/editor")
	{
		editor.POST("/seats/:id", controller.SelectSeat) // POST /api/v1/editor/seats/:id
		editor.GET("", controller.GetEditor)             // GET /api/v1/editor
		editor.PATCH("", controller.EditField)           // PATCH /api/v1/editor
		editor.POST("/save", controller.SaveEditor)      // POST /api/v1/editor/save
		editor.DELETE("", controller.CancelEditor)       // DELETE /api/v1/editor
	}
}
