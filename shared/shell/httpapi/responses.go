package httpapi

import (
	"time"

	"github.com/bookswap-hub/bookswap/features/accounts"
	"github.com/bookswap-hub/bookswap/features/query/bookdetails"
	"github.com/bookswap-hub/bookswap/features/query/bookshelf"
	"github.com/bookswap-hub/bookswap/features/query/swaplist"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const uploadsPath = "/uploads/"

// userResponse carries only what the caller may see of a user.
// Contact details are filled for the own profile and, email only, for book owners.
type userResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type profileResponse struct {
	userResponse
	RegisteredAt time.Time `json:"registeredAt"`
}

type sessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      profileResponse `json:"user"`
}

type bookResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author,omitempty"`
	Description string        `json:"description,omitempty"`
	CoverURL    string        `json:"coverUrl,omitempty"`
	Status      string        `json:"status"`
	OwnerID     string        `json:"ownerId"`
	Owner       *userResponse `json:"owner,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type bookListResponse struct {
	Books []bookResponse `json:"books"`
	Count int            `json:"count"`
}

type swapBookResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	CoverURL string `json:"coverUrl,omitempty"`
	Status   string `json:"status,omitempty"`
	Deleted  bool   `json:"deleted,omitempty"`
}

type swapResponse struct {
	ID            string           `json:"id"`
	Status        string           `json:"status"`
	BookOffered   swapBookResponse `json:"bookOffered"`
	BookRequested swapBookResponse `json:"bookRequested"`
	OfferedBy     userResponse     `json:"offeredBy"`
	RequestedFrom userResponse     `json:"requestedFrom"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type swapListResponse struct {
	Swaps []swapResponse `json:"swaps"`
	Count int            `json:"count"`
}

func coverURL(key core.BlobKeyString) string {
	if key == "" {
		return ""
	}

	return uploadsPath + key
}

func toProfileResponse(profile accounts.Profile) profileResponse {
	return profileResponse{
		userResponse: userResponse{
			ID:          profile.UserID,
			FullName:    profile.FullName,
			Email:       profile.Email,
			PhoneNumber: profile.PhoneNumber,
		},
		RegisteredAt: profile.RegisteredAt,
	}
}

func toBookResponse(book bookdetails.BookDetails) bookResponse {
	return bookResponse{
		ID:          book.BookID,
		Title:       book.Title,
		Author:      book.Author,
		Description: book.Description,
		CoverURL:    coverURL(book.CoverKey),
		Status:      string(book.Status),
		OwnerID:     book.OwnerID,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

func toBookListResponse(shelf bookshelf.Bookshelf) bookListResponse {
	books := make([]bookResponse, 0, len(shelf.Books))
	for _, book := range shelf.Books {
		books = append(books, bookResponse{
			ID:          book.BookID,
			Title:       book.Title,
			Author:      book.Author,
			Description: book.Description,
			CoverURL:    coverURL(book.CoverKey),
			Status:      string(book.Status),
			OwnerID:     book.Owner.UserID,
			Owner: &userResponse{
				ID:       book.Owner.UserID,
				FullName: book.Owner.FullName,
				Email:    book.Owner.Email,
			},
			CreatedAt: book.CreatedAt,
			UpdatedAt: book.UpdatedAt,
		})
	}

	return bookListResponse{Books: books, Count: shelf.Count}
}

func toSwapBookResponse(book swaplist.BookSummary) swapBookResponse {
	return swapBookResponse{
		ID:       book.BookID,
		Title:    book.Title,
		Author:   book.Author,
		CoverURL: coverURL(book.CoverKey),
		Status:   string(book.Status),
		Deleted:  book.Delisted,
	}
}

func toSwapUserResponse(user swaplist.UserSummary) userResponse {
	return userResponse{
		ID:       user.UserID,
		FullName: user.FullName,
	}
}

func toSwapResponse(swap swaplist.SwapInfo) swapResponse {
	return swapResponse{
		ID:            swap.SwapID,
		Status:        string(swap.Status),
		BookOffered:   toSwapBookResponse(swap.BookOffered),
		BookRequested: toSwapBookResponse(swap.BookRequested),
		OfferedBy:     toSwapUserResponse(swap.OfferedBy),
		RequestedFrom: toSwapUserResponse(swap.RequestedFrom),
		CreatedAt:     swap.CreatedAt,
		UpdatedAt:     swap.UpdatedAt,
	}
}

func toSwapListResponse(list swaplist.SwapList) swapListResponse {
	swaps := make([]swapResponse, 0, len(list.Swaps))
	for _, swap := range list.Swaps {
		swaps = append(swaps, toSwapResponse(swap))
	}

	return swapListResponse{Swaps: swaps, Count: list.Count}
}
