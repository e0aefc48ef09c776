package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/community/forums/dto"
	forumModel "educlub_backend/internals/features/community/forums/model"
	helper "educlub_backend/internals/helpers"
	authmw "educlub_backend/internals/middlewares/auth"
)

type ForumController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewForumController(db *gorm.DB) *ForumController {
	return &ForumController{DB: db, Validate: validator.New()}
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("Invalid ID")
	}
	return id, nil
}

// GET /api/forums
func (ctrl *ForumController) ListThreads(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	var rows []dto.ThreadListItem
	err := ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT t.id, t.title, t.author_id,
		       COALESCE(u.first_name || ' ' || u.last_name, '') AS author_name,
		       t.created_at,
		       (SELECT COUNT(1) FROM forum_thread_likes l WHERE l.thread_id = t.id) AS like_count,
		       (SELECT COUNT(1) FROM forum_comments fc WHERE fc.thread_id = t.id) AS comment_count,
		       EXISTS (SELECT 1 FROM forum_thread_likes l WHERE l.thread_id = t.id AND l.user_id = ?) AS liked
		FROM forum_threads t
		LEFT JOIN users u ON u.id = t.author_id
		ORDER BY t.created_at DESC
		LIMIT 100`, session.UserID).Scan(&rows).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/forums: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []dto.ThreadListItem{}
	}
	return helper.JsonOK(c, fiber.Map{"threads": rows})
}

// POST /api/forums
func (ctrl *ForumController) CreateThread(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	var req dto.CreateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	thread := forumModel.ForumThread{
		AuthorID: session.UserID,
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&thread).Error; err != nil {
		log.Printf("[ERROR] POST /api/forums: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, fiber.Map{"thread": thread})
}

// GET /api/forums/:id
func (ctrl *ForumController) ThreadDetail(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	type threadRow struct {
		forumModel.ForumThread
		AuthorName string `gorm:"column:author_name" json:"author_name"`
		LikeCount  int64  `gorm:"column:like_count" json:"like_count"`
		Liked      bool   `gorm:"column:liked" json:"liked"`
	}
	var row threadRow
	err = ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT t.*,
		       COALESCE(u.first_name || ' ' || u.last_name, '') AS author_name,
		       (SELECT COUNT(1) FROM forum_thread_likes l WHERE l.thread_id = t.id) AS like_count,
		       EXISTS (SELECT 1 FROM forum_thread_likes l WHERE l.thread_id = t.id AND l.user_id = ?) AS liked
		FROM forum_threads t
		LEFT JOIN users u ON u.id = t.author_id
		WHERE t.id = ?`, session.UserID, id).Scan(&row).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/forums/%d: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if row.ID == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Not found")
	}
	return helper.JsonOK(c, fiber.Map{"thread": row})
}

// GET /api/forums/:id/comments — flat list ordered for client-side tree
// building by parent_id.
func (ctrl *ForumController) ListComments(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rows []dto.CommentView
	err = ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT fc.id, fc.parent_id, fc.author_id,
		       COALESCE(u.first_name || ' ' || u.last_name, '') AS author_name,
		       fc.body, fc.created_at,
		       (SELECT COUNT(1) FROM forum_comment_likes l WHERE l.comment_id = fc.id) AS like_count,
		       EXISTS (SELECT 1 FROM forum_comment_likes l WHERE l.comment_id = fc.id AND l.user_id = ?) AS liked
		FROM forum_comments fc
		LEFT JOIN users u ON u.id = fc.author_id
		WHERE fc.thread_id = ?
		ORDER BY fc.created_at ASC`, session.UserID, id).Scan(&rows).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/forums/%d/comments: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []dto.CommentView{}
	}
	return helper.JsonOK(c, fiber.Map{"comments": rows})
}

// POST /api/forums/:id/comments
func (ctrl *ForumController) CreateComment(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	comment := forumModel.ForumComment{
		ThreadID: id,
		AuthorID: session.UserID,
		ParentID: req.ParentID,
		Body:     req.Body,
	}
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&forumModel.ForumThread{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		if req.ParentID != nil {
			err := tx.Model(&forumModel.ForumComment{}).
				Where("id = ? AND thread_id = ?", *req.ParentID, id).
				Count(&n).Error
			if err != nil {
				return err
			}
			if n == 0 {
				return errParentComment
			}
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Not found")
		}
		if errors.Is(err, errParentComment) {
			return helper.JsonError(c, fiber.StatusBadRequest, "parent_id is not a comment of this thread")
		}
		log.Printf("[ERROR] POST /api/forums/%d/comments: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, fiber.Map{"comment": comment})
}

var errParentComment = errors.New("parent comment not in thread")

// POST /api/forums/:id/like — toggle
func (ctrl *ForumController) ToggleThreadLike(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return ctrl.toggleLike(c, "forum_thread_likes", "thread_id", id, session.UserID, func(tx *gorm.DB) (int64, error) {
		var n int64
		err := tx.Model(&forumModel.ForumThread{}).Where("id = ?", id).Count(&n).Error
		return n, err
	})
}

// POST /api/forums/comments/:commentId/like — toggle
func (ctrl *ForumController) ToggleCommentLike(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	id, err := parseID(c, "commentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return ctrl.toggleLike(c, "forum_comment_likes", "comment_id", id, session.UserID, func(tx *gorm.DB) (int64, error) {
		var n int64
		err := tx.Model(&forumModel.ForumComment{}).Where("id = ?", id).Count(&n).Error
		return n, err
	})
}

func (ctrl *ForumController) toggleLike(c *fiber.Ctx, table, col string, id, userID int64, exists func(*gorm.DB) (int64, error)) error {
	liked := false
	var count int64

	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		n, err := exists(tx)
		if err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Exec(`DELETE FROM `+table+` WHERE `+col+` = ? AND user_id = ?`, id, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			err := tx.Exec(`INSERT INTO `+table+` (`+col+`, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				id, userID).Error
			if err != nil {
				return err
			}
			liked = true
		}
		return tx.Raw(`SELECT COUNT(1) FROM `+table+` WHERE `+col+` = ?`, id).Scan(&count).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Not found")
		}
		log.Printf("[ERROR] toggle like on %s %d: %v", table, id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, fiber.Map{"liked": liked, "like_count": count})
}
