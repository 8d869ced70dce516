package vault

import (
	"context"
	"fmt"
	"strings"

	"mdvault/internal/config"
	"mdvault/internal/domain"
	models "mdvault/internal/domain/models/vault"
	vaultSvc "mdvault/internal/domain/services/vault"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateFolder registers parent/name (or just name at the top level) as an
// empty folder. Nothing is written to the store: the folder exists only in
// this session until a document is attached to it.
func (s *Session) CreateFolder(parent, name string) (string, error) {
	release, err := s.beginMutation("create folder")
	if err != nil {
		return "", err
	}
	defer release()

	path, err := validateFolderPath(models.RawFolderPath(parent).Child(strings.TrimSpace(name)).String())
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	added := s.emptyFolders.Add(path.String())
	s.touch()
	s.mu.Unlock()

	s.logger.Info("folder created",
		"path", path.String(),
		"already_registered", !added,
	)
	return path.String(), nil
}

// RenameFolder moves the folder at oldPath, with everything below it, to
// newPath.
//
// The registry and collapse state are rewritten first. Then every affected
// document is updated one at a time, each update awaited before the next. The
// first failing update stops the cascade: documents before it keep their new
// path, the rest keep the old one, and the in-memory rewrites stand. The
// returned *CascadeError describes that torn state; the cache is left alone so
// the next reload shows it. A complete cascade is followed by a reload.
//
// Renaming to the same path or to an empty string does nothing. Moving a
// folder below itself is a conflict.
func (s *Session) RenameFolder(ctx context.Context, oldPath, newPath string) (*vaultSvc.CascadeResult, error) {
	newPath = strings.TrimSpace(newPath)
	if newPath == "" || newPath == oldPath {
		return &vaultSvc.CascadeResult{Path: oldPath, NewPath: oldPath}, nil
	}
	target, err := validateFolderPath(newPath)
	if err != nil {
		return nil, err
	}
	newPath = target.String()

	source := models.RawFolderPath(oldPath)
	if source.Contains(newPath) {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("cannot move folder %q into its own subfolder %q", oldPath, newPath),
			ResourceType: "folder",
			ResourceID:   oldPath,
		}
	}

	release, err := s.beginMutation("rename folder")
	if err != nil {
		return nil, err
	}
	defer release()

	// Once started, a cascade runs to completion or first failure.
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	batch := PlanRename(s.documents, source, target)
	s.emptyFolders.Rebase(oldPath, newPath)
	s.collapsed.Rebase(oldPath, newPath)
	s.touch()
	s.mu.Unlock()

	s.logger.Debug("rename cascade planned",
		"path", oldPath,
		"new_path", newPath,
		"affected", len(batch.Steps),
	)

	res, err := s.runCascade(ctx, batch, oldPath)
	res.NewPath = newPath
	if err != nil {
		return res, err
	}

	s.logger.Info("folder renamed",
		"path", oldPath,
		"new_path", newPath,
		"documents_moved", len(res.Applied),
		"reloaded", res.Reloaded,
	)
	return res, nil
}

// DeleteFolder moves every document in node's subtree to unsorted and forgets
// path and its descendants in the registry and collapse state. node must be
// the folder as it was rendered when the user picked it, so exactly the
// documents that were visibly under it are touched.
//
// Failure semantics match RenameFolder.
func (s *Session) DeleteFolder(ctx context.Context, path string, node *models.FolderNode) (*vaultSvc.CascadeResult, error) {
	if node == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %q not found", path)}
	}

	release, err := s.beginMutation("delete folder")
	if err != nil {
		return nil, err
	}
	defer release()

	ctx = context.WithoutCancel(ctx)

	batch := PlanUnsort(node.CollectDocuments())

	s.mu.Lock()
	droppedEmpty := s.emptyFolders.RemoveSubtree(path)
	droppedCollapsed := s.collapsed.RemoveSubtree(path)
	s.touch()
	s.mu.Unlock()

	s.logger.Debug("delete cascade planned",
		"path", path,
		"affected", len(batch.Steps),
		"dropped_empty_folders", droppedEmpty,
		"dropped_collapsed", droppedCollapsed,
	)

	res, err := s.runCascade(ctx, batch, path)
	if err != nil {
		return res, err
	}

	s.logger.Info("folder deleted",
		"path", path,
		"documents_unsorted", len(res.Applied),
		"reloaded", res.Reloaded,
	)
	return res, nil
}

// runCascade executes batch and reloads when every step went through.
func (s *Session) runCascade(ctx context.Context, batch *Batch, path string) (*vaultSvc.CascadeResult, error) {
	result := batch.Execute(ctx, s.updateProject)

	res := &vaultSvc.CascadeResult{
		Path:     path,
		Affected: len(batch.Steps),
		Applied:  DocumentIDs(result.Applied),
	}
	failed := result.Failure != nil
	s.metrics.RecordCascade(string(batch.Kind), len(batch.Steps), len(result.Applied), failed)

	if failed {
		res.Failed = result.Failure.Step.DocumentID
		res.Remaining = DocumentIDs(result.NotStarted)
		s.logger.Warn("cascade stopped",
			"kind", batch.Kind,
			"path", path,
			"applied", len(result.Applied),
			"failed_document_id", res.Failed,
			"not_started", len(result.NotStarted),
			"error", result.Err(),
		)
		return res, &CascadeError{Kind: batch.Kind, Path: path, Result: result}
	}

	res.Reloaded = s.reloadAfterMutation(ctx)
	return res, nil
}

// MoveDocument sets one document's project; an empty path moves it to
// unsorted. This is the drag-and-drop gesture.
func (s *Session) MoveDocument(ctx context.Context, id, newPath string) (*models.Document, error) {
	release, err := s.beginMutation("move document")
	if err != nil {
		return nil, err
	}
	defer release()

	ctx = context.WithoutCancel(ctx)

	project := models.ProjectPtr(strings.TrimSpace(newPath))
	doc, err := s.store.UpdateProject(ctx, id, project)
	s.metrics.RecordRemoteCall("update", err)
	if err != nil {
		return nil, asRemoteError("update", id, err)
	}

	s.reloadAfterMutation(ctx)

	s.logger.Info("document moved",
		"document_id", id,
		"project", project,
	)
	return doc, nil
}

// DeleteDocument deletes one document. When it is the last document at its
// exact project path, that path is registered as an empty folder first so
// the folder survives the rebuild.
func (s *Session) DeleteDocument(ctx context.Context, id string) error {
	release, err := s.beginMutation("delete document")
	if err != nil {
		return err
	}
	defer release()

	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	kept := s.keepFolderOfLastDocument(id)
	s.touch()
	s.mu.Unlock()

	err = s.store.DeleteDocument(ctx, id)
	s.metrics.RecordRemoteCall("delete", err)
	if err != nil {
		return asRemoteError("delete", id, err)
	}

	s.reloadAfterMutation(ctx)

	s.logger.Info("document deleted",
		"document_id", id,
		"kept_empty_folder", kept,
	)
	return nil
}

// keepFolderOfLastDocument registers the project of document id as empty
// when no other cached document shares it. Caller holds mu.
func (s *Session) keepFolderOfLastDocument(id string) string {
	var target *models.Document
	for i := range s.documents {
		if s.documents[i].ID == id {
			target = &s.documents[i]
			break
		}
	}
	if target == nil || !target.InFolder() {
		return ""
	}
	project := *target.Project
	for _, doc := range s.documents {
		if doc.ID != id && doc.Project != nil && *doc.Project == project {
			return ""
		}
	}
	s.emptyFolders.Add(project)
	return project
}

// validateFolderPath checks a user-supplied folder location.
func validateFolderPath(raw string) (models.FolderPath, error) {
	path, err := models.ParseFolderPath(raw)
	if err != nil {
		return models.FolderPath{}, err
	}

	segments := path.Segments()
	err = validation.Validate(path.String(),
		validation.Length(1, config.MaxFolderPathLength),
	)
	if err == nil {
		err = validation.Validate(segments,
			validation.Length(1, config.MaxFolderDepth),
			validation.Each(validation.Length(1, config.MaxFolderNameLength)),
		)
	}
	if err != nil {
		return models.FolderPath{}, &domain.ValidationError{
			Message: fmt.Sprintf("invalid folder path %q: %v", path.String(), err),
		}
	}
	return path, nil
}
