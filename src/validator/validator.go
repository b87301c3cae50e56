package validator

import (
	"fmt"
	"strings"

	"keep-notes/src/domain"

	"github.com/go-playground/validator/v10"
)

// DraftValidator はリポジトリに到達する前のドラフト検証ゲート
type DraftValidator struct {
	validate *validator.Validate
}

// NewDraftValidator creates a new draft validator.
func NewDraftValidator() *DraftValidator {
	return &DraftValidator{
		validate: validator.New(),
	}
}

// ValidateDraft rejects drafts that would produce an empty note and
// drafts carrying values outside the fixed enums or date formats.
func (dv *DraftValidator) ValidateDraft(draft domain.NoteDraft) error {
	if isEmptyDraft(draft) {
		return domain.ErrEmptyNote
	}

	if err := dv.validate.Struct(draft); err != nil {
		var details []string
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				details = append(details, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid draft: %s", strings.Join(details, ", "))
		}
		return fmt.Errorf("invalid draft: %w", err)
	}
	return nil
}

// isEmptyDraft reports whether the draft has no title, no effective body
// and no images. テキストノートは content、チェックリストは items が本文
func isEmptyDraft(draft domain.NoteDraft) bool {
	if strings.TrimSpace(draft.Title) != "" {
		return false
	}
	if len(draft.Images) > 0 {
		return false
	}
	if draft.Type == domain.TypeChecklist {
		return len(draft.Items) == 0
	}
	return strings.TrimSpace(draft.Content) == ""
}
