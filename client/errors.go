package client

import "errors"

// ErrUnauthenticated возвращается, когда сервер отклонил запрос как
// неаутентифицированный: токена нет, он истёк или его владелец удалён.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrInvalidCredentials возвращается при неудачном входе.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken возвращается при регистрации на занятую почту.
var ErrEmailTaken = errors.New("email already taken")

// ErrNoItinerary возвращается при удалении, когда маршрута не было.
var ErrNoItinerary = errors.New("no itinerary to delete")
