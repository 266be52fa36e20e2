package services

import (
	"context"

	"github.com/lucasb/storyquest/internal/analytics"
	"github.com/lucasb/storyquest/internal/content"
	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
)

// StoryService walks the scene graph: where the player is, where their
// choices can take them.
type StoryService interface {
	CurrentScene(ctx context.Context, profileID int64) (*SceneView, error)
	Choose(ctx context.Context, profileID int64, nextSceneID string) (*SceneView, error)
}

// SceneView is a scene as shown to the player.
type SceneView struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Choices   []models.Choice `json:"choices,omitempty"`
	HasPuzzle bool            `json:"has_puzzle"`
}

type storyService struct {
	catalog  *content.Catalog
	progress ProgressService
	puzzles  PuzzleService
	recorder analytics.Recorder
}

// NewStoryService creates a new StoryService
func NewStoryService(catalog *content.Catalog, progress ProgressService, puzzles PuzzleService, recorder analytics.Recorder) StoryService {
	if recorder == nil {
		recorder = analytics.NewNoopRecorder()
	}
	return &storyService{catalog: catalog, progress: progress, puzzles: puzzles, recorder: recorder}
}

func (s *storyService) CurrentScene(ctx context.Context, profileID int64) (*SceneView, error) {
	log := logger.FromContext(ctx)

	progress, err := s.progress.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	scene, ok := s.catalog.Scene(progress.CurrentScene)
	if !ok {
		// The save can point at a scene removed by a content update. Fall
		// back to the story entry point rather than stranding the player.
		log.Warn("saved scene %q no longer exists, returning to start", progress.CurrentScene)
		scene, ok = s.catalog.Scene(s.catalog.StartScene)
		if !ok {
			return nil, errors.NewInternalError(nil)
		}
		if err := s.progress.MoveToScene(ctx, profileID, scene.ID); err != nil {
			return nil, err
		}
	}
	return sceneView(scene), nil
}

// Choose follows one of the current scene's choices. Any live puzzle attempt
// is discarded; navigation never persists partial attempts.
func (s *storyService) Choose(ctx context.Context, profileID int64, nextSceneID string) (*SceneView, error) {
	log := logger.FromContext(ctx)

	progress, err := s.progress.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	current, ok := s.catalog.Scene(progress.CurrentScene)
	if !ok {
		current, ok = s.catalog.Scene(s.catalog.StartScene)
		if !ok {
			return nil, errors.NewInternalError(nil)
		}
	}

	valid := false
	for _, choice := range current.Choices {
		if choice.Next == nextSceneID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, errors.NewBadRequestError("scene is not reachable from here")
	}

	next, ok := s.catalog.Scene(nextSceneID)
	if !ok {
		return nil, errors.NewNotFoundError("scene", nextSceneID)
	}

	s.puzzles.Abandon(ctx, profileID)
	if err := s.progress.MoveToScene(ctx, profileID, next.ID); err != nil {
		return nil, err
	}

	log.Debug("profile %d moved: %s -> %s", profileID, current.ID, next.ID)
	s.recorder.Record(ctx, profileID, analytics.EventSceneEntered, map[string]any{
		"scene_id": next.ID,
	})
	return sceneView(next), nil
}

func sceneView(scene models.Scene) *SceneView {
	return &SceneView{
		ID:        scene.ID,
		Text:      scene.Text,
		Choices:   scene.Choices,
		HasPuzzle: scene.PuzzleID != "",
	}
}
