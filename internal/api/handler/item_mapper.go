package handler

import (
	"github.com/crudkit/items-api/internal/core/domain"
)

// --- Request → Service input ---

func toNewItem(req createItemRequest) domain.NewItem {
	return domain.NewItem{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	}
}

func toItemPatch(req updateItemRequest) domain.ItemPatch {
	return domain.ItemPatch{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	}
}

func toPage(q listItemsQuery) domain.Page {
	return domain.Page{Skip: q.Skip, Limit: q.Limit}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toTokenResponse(t *domain.Token) tokenResponse {
	return tokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   int64(t.ExpiresIn.Seconds()),
	}
}

func toItemResponse(i *domain.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		UserID:      i.OwnerID,
		Title:       i.Title,
		Description: i.Description,
		IsCompleted: i.IsCompleted,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toItemResponses(items []*domain.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItemResponse(i))
	}
	return out
}
