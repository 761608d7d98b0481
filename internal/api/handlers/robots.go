package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rohits-web03/robofriends/internal/models"
	"github.com/rohits-web03/robofriends/internal/repositories"
	"github.com/rohits-web03/robofriends/internal/utils"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20 // 1 MiB

const (
	MsgMissingFields = "Please enter all fields"
	MsgInvalidBody   = "Invalid request body"

	errListRobots = "Server error while fetching robots."
	errCheckPhone = "Server error while checking phone number."
	errSaveRobot  = "Server error while saving robot."
)

// RobotStore is the persistence the robot handlers need.
type RobotStore interface {
	List(ctx context.Context) ([]models.Robot, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, in models.NewRobot) (models.Robot, error)
}

type RobotHandler struct {
	store RobotStore
	log   *zap.Logger
}

func NewRobotHandler(store RobotStore, log *zap.Logger) *RobotHandler {
	return &RobotHandler{store: store, log: log}
}

// GET /api/robots
// ListRobots godoc
// @Summary List robots
// @Description Returns every robot in the directory in insertion order.
// @Tags Robots
// @Produce json
// @Success 200 {array} models.Robot
// @Failure 500 {object} utils.ErrorBody
// @Router /api/robots [get]
func (h *RobotHandler) ListRobots(w http.ResponseWriter, r *http.Request) {
	robots, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error("Error fetching robots", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, errListRobots)
		return
	}
	utils.JSONResponse(w, http.StatusOK, robots)
}

// GET /api/robots/check-phone/{phone}
// CheckPhone godoc
// @Summary Check whether a phone number is taken
// @Description Exact string match against stored phone numbers; no normalization.
// @Tags Robots
// @Produce json
// @Param phone path string true "Phone number"
// @Success 200 {object} utils.ExistsBody
// @Failure 500 {object} utils.ErrorBody
// @Router /api/robots/check-phone/{phone} [get]
func (h *RobotHandler) CheckPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.PathValue("phone")

	exists, err := h.store.PhoneExists(r.Context(), phone)
	if err != nil {
		h.log.Error("Error checking phone number", zap.String("phone", phone), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, errCheckPhone)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.ExistsBody{Exists: exists})
}

// POST /api/robots
// CreateRobot godoc
// @Summary Add a robot
// @Description Stores a new robot. Username, email and phone must each be unique.
// @Tags Robots
// @Accept json
// @Produce json
// @Param robot body models.NewRobot true "Robot to add"
// @Success 201 {object} models.Robot
// @Failure 400 {object} utils.MessageBody "Missing fields or duplicate username, email or phone"
// @Failure 500 {object} utils.ErrorBody
// @Router /api/robots [post]
func (h *RobotHandler) CreateRobot(w http.ResponseWriter, r *http.Request) {
	var input models.NewRobot

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if missing := input.Missing(); len(missing) > 0 {
		h.log.Debug("Rejected robot with missing fields", zap.Strings("missing", missing))
		utils.JSONMessage(w, http.StatusBadRequest, MsgMissingFields)
		return
	}

	robot, err := h.store.Create(r.Context(), input)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrAlreadyExists):
		utils.JSONMessage(w, http.StatusBadRequest, models.MsgAlreadyExists)
		return
	default:
		h.log.Error("Error saving robot", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, errSaveRobot)
		return
	}

	h.log.Info("Robot created", zap.String("id", robot.ID.String()), zap.String("username", robot.Username))
	utils.JSONResponse(w, http.StatusCreated, robot)
}
