package routes

import (
	v1 "talent-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Deps{
		Config:   deps.Config,
		DB:       deps.DB,
		Cache:    deps.Cache,
		Notifier: deps.Notifier,
		Logger:   deps.Logger,
	})
}
