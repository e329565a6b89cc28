package spacerocks

import "github.com/go-gl/mathgl/mgl32"

// CollisionMessage is dispatched after a physics step for every contact that
// began during it.
type CollisionMessage struct {
	A *Entity
	B *Entity
}

func (CollisionMessage) Type() string {
	return "CollisionMessage"
}

// DestroyedMessage is dispatched once when an entity's health runs out. By is
// whatever dealt the final hit.
type DestroyedMessage struct {
	Entity *Entity
	By     *Entity
}

func (DestroyedMessage) Type() string {
	return "DestroyedMessage"
}

type FiredMessage struct {
	Weapon     *Entity
	Projectile *Entity
}

func (FiredMessage) Type() string {
	return "FiredMessage"
}

type GameOverMessage struct {
	Score   int
	Elapsed float32
}

func (GameOverMessage) Type() string {
	return "GameOverMessage"
}

// RespawnedMessage is dispatched when a dead player is brought back.
type RespawnedMessage struct {
	Player *Entity
}

func (RespawnedMessage) Type() string {
	return "RespawnedMessage"
}

type GoalReachedMessage struct {
	Points int
	Next   mgl32.Vec2
}

func (GoalReachedMessage) Type() string {
	return "GoalReachedMessage"
}
