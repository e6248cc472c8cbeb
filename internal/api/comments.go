package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/llehouerou/xiamiu/internal/catalog"
)

// Comments returns the comments attached to an artist, album or song.
func (c *Client) Comments(ctx context.Context, target catalog.Target, id string) ([]catalog.Comment, error) {
	return getJSON[[]catalog.Comment](ctx, c, "/"+string(target)+"/"+esc(id)+"/comments", nil)
}

// UserComments returns the comments a user left on one kind of entity.
func (c *Client) UserComments(ctx context.Context, userID int, target catalog.Target) ([]catalog.Comment, error) {
	return getJSON[[]catalog.Comment](ctx, c,
		"/users/"+strconv.Itoa(userID)+"/comments/"+string(target), nil)
}

// AddComment posts a comment as the session's user. Album and song comments
// carry a rating, raised to at least one star; artist comments never do.
func (c *Client) AddComment(
	ctx context.Context,
	sess *Session,
	target catalog.Target,
	id, text string,
	stars int,
) (catalog.Comment, error) {
	if !sess.Valid() {
		return catalog.Comment{}, ErrUnauthorized
	}

	user, err := c.CurrentUser(ctx, sess)
	if err != nil {
		return catalog.Comment{}, fmt.Errorf("current user: %w", err)
	}

	payload := catalog.NewComment{Comment: text, UserID: user.ID}
	switch target {
	case catalog.TargetArtist:
		payload.ArtistID = id
	case catalog.TargetAlbum:
		payload.AlbumID = id
	case catalog.TargetSong:
		payload.SongID = id
	default:
		return catalog.Comment{}, fmt.Errorf("unknown comment target %q", target)
	}
	if target.Rated() {
		payload.Star = catalog.ClampStars(stars)
	}

	var out catalog.Comment
	if err := c.postJSON(ctx, "/"+string(target)+"/"+esc(id)+"/comments", sess, payload, &out); err != nil {
		return catalog.Comment{}, err
	}
	return out, nil
}

// DeleteComment removes a comment owned by the session's user.
func (c *Client) DeleteComment(ctx context.Context, sess *Session, target catalog.Target, commentID int) error {
	if !sess.Valid() {
		return ErrUnauthorized
	}
	return c.delete(ctx, "/"+string(target)+"/comments/"+strconv.Itoa(commentID), sess)
}
