package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/sushihentaime/blogapp/internal/blogservice"
	"github.com/sushihentaime/blogapp/internal/userservice"
)

type registerUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input registerUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.userService.CreateUser(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.failedValidationResponse(w, r, map[string]string{"email": "a user with this email address already exists"})
		case errors.Is(err, userservice.ErrDuplicateUsername):
			app.failedValidationResponse(w, r, map[string]string{"username": "this username is already taken"})
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type loginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, err := app.userService.LoginUser(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsResponse(w, r)
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"token": token}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	err := app.userService.LogoutUser(r.Context(), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "user logged out"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) userBlogsHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	dashboard, err := app.blogService.GetDashboard(r.Context(), user.ID, time.Now())
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"author":              user.Username,
		"blogs":               dashboard.Blogs,
		"top_commented_blogs": dashboard.TopCommentedBlogs,
		"top_liked_blogs":     dashboard.TopLikedBlogs,
		"top_disliked_blogs":  dashboard.TopDislikedBlogs,
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createBlogRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// createBlogHandler answers with the created blog wrapped in a one element array.
func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input createBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	blog, err := app.blogService.CreateBlog(r.Context(), &blogservice.CreateBlogRequest{
		Name:     input.Name,
		Content:  input.Content,
		AuthorID: app.getUserContext(r).ID,
	})
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, []*blogservice.Blog{blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type deleteBlogRequest struct {
	ID int `json:"id"`
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input deleteBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), input.ID, app.getUserContext(r).ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) seeBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, []*blogservice.Blog{blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// editBlogRequest distinguishes an absent field (nil) from one set to a value.
type editBlogRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

func (app *application) editBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input editBlogRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	blog, err := app.blogService.UpdateBlog(r.Context(), &blogservice.UpdateBlogRequest{
		ID:          id,
		RequesterID: app.getUserContext(r).ID,
		Name:        input.Name,
		Content:     input.Content,
	})
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, []*blogservice.Blog{blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) recentActivityHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := app.readOptionalIntQuery(r, "author_id")
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	activity, err := app.blogService.GetRecentActivity(r.Context(), app.getUserContext(r).ID, authorID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, activity, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type addCommentRequest struct {
	CommentText string `json:"comment_text"`
}

func (app *application) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input addCommentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	comment, err := app.blogService.AddComment(r.Context(), &blogservice.CreateCommentRequest{
		BlogID: id,
		UserID: app.getUserContext(r).ID,
		Text:   input.CommentText,
	})
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type addResponseRequest struct {
	Reaction string `json:"reaction"`
}

func (app *application) addResponseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input addResponseRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	response, err := app.blogService.ReactToBlog(r.Context(), &blogservice.ReactRequest{
		BlogID:   id,
		UserID:   app.getUserContext(r).ID,
		Reaction: blogservice.Reaction(input.Reaction),
	})
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"response": response}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
