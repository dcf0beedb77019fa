package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/service"
	"github.com/hearthhq/hearth/pkg/homesdk"
	"github.com/hearthhq/hearth/pkg/httpx"
	"github.com/hearthhq/hearth/pkg/slogx"
)

// RoomsHandler serves rooms, devices and device readings. Every route sits
// behind RequireBuildingMember("id").
type RoomsHandler struct {
	RoomService *service.RoomService
}

// pathIDs parses the named path values as positive ids, writing a 400 and
// returning false on the first bad one.
func pathIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]int64, bool) {
	ids := make([]int64, len(names))
	for i, name := range names {
		id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
		if err != nil || id <= 0 {
			httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidRequest,
				ErrorDescription: name + " must be a positive integer",
			})
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

func writeRoomError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
	case errors.Is(err, service.ErrBuildingNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeNotFound,
			ErrorDescription: "building not found",
		})
	case errors.Is(err, service.ErrRoomNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeNotFound,
			ErrorDescription: "room not found",
		})
	case errors.Is(err, service.ErrDeviceNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeNotFound,
			ErrorDescription: "device not found",
		})
	case errors.Is(err, service.ErrNoReadings):
		httpx.WriteJSON(w, http.StatusNotFound, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeNotFound,
			ErrorDescription: "device has no readings",
		})
	default:
		slogx.FromContext(r.Context()).Error("failed to "+action, slog.Any("err", err))
		httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeServerError,
			ErrorDescription: "failed to " + action,
		})
	}
}

// HandleCreateRoom godoc
//
//	@Summary	Create room
//	@Tags		Rooms
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int							true	"Building ID"
//	@Param		request	body		homesdk.CreateRoomRequest	true	"name"
//	@Success	201		{object}	homesdk.RoomResponse
//	@Failure	400		{object}	homesdk.ErrorResponse
//	@Failure	403		{object}	homesdk.ErrorResponse	"not a member"
//	@Router		/buildings/{id}/rooms [post].
func (h *RoomsHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}

	var req homesdk.CreateRoomRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	room, err := h.RoomService.CreateRoom(r.Context(), ids[0], req.Name)
	if err != nil {
		writeRoomError(w, r, err, "create room")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, roomResponse(room))
}

// HandleListRooms godoc
//
//	@Summary	List rooms
//	@Tags		Rooms
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Building ID"
//	@Success	200	{object}	homesdk.RoomListResponse
//	@Failure	403	{object}	homesdk.ErrorResponse	"not a member"
//	@Router		/buildings/{id}/rooms [get].
func (h *RoomsHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id")
	if !ok {
		return
	}

	rooms, err := h.RoomService.ListRooms(r.Context(), ids[0])
	if err != nil {
		writeRoomError(w, r, err, "list rooms")
		return
	}

	resp := homesdk.RoomListResponse{Rooms: make([]homesdk.RoomResponse, 0, len(rooms))}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, roomResponse(room))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetRoom godoc
//
//	@Summary	Get room
//	@Tags		Rooms
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int	true	"Building ID"
//	@Param		roomId	path		int	true	"Room ID"
//	@Success	200		{object}	homesdk.RoomResponse
//	@Failure	404		{object}	homesdk.ErrorResponse
//	@Router		/buildings/{id}/rooms/{roomId} [get].
func (h *RoomsHandler) HandleGetRoom(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id", "roomId")
	if !ok {
		return
	}

	room, err := h.RoomService.GetRoom(r.Context(), ids[0], ids[1])
	if err != nil {
		writeRoomError(w, r, err, "get room")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, roomResponse(room))
}

// HandleCreateDevice godoc
//
//	@Summary	Create device
//	@Tags		Devices
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int							true	"Building ID"
//	@Param		roomId	path		int							true	"Room ID"
//	@Param		request	body		homesdk.CreateDeviceRequest	true	"name, type"
//	@Success	201		{object}	homesdk.DeviceResponse
//	@Failure	400		{object}	homesdk.ErrorResponse
//	@Failure	404		{object}	homesdk.ErrorResponse	"room not found"
//	@Router		/buildings/{id}/rooms/{roomId}/devices [post].
func (h *RoomsHandler) HandleCreateDevice(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id", "roomId")
	if !ok {
		return
	}

	var req homesdk.CreateDeviceRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	device, err := h.RoomService.CreateDevice(r.Context(), ids[0], ids[1], req.Name, req.Type)
	if err != nil {
		writeRoomError(w, r, err, "create device")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, deviceResponse(device))
}

// HandleListDevices godoc
//
//	@Summary	List devices
//	@Tags		Devices
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int	true	"Building ID"
//	@Param		roomId	path		int	true	"Room ID"
//	@Success	200		{object}	homesdk.DeviceListResponse
//	@Failure	404		{object}	homesdk.ErrorResponse	"room not found"
//	@Router		/buildings/{id}/rooms/{roomId}/devices [get].
func (h *RoomsHandler) HandleListDevices(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id", "roomId")
	if !ok {
		return
	}

	devices, err := h.RoomService.ListDevices(r.Context(), ids[0], ids[1])
	if err != nil {
		writeRoomError(w, r, err, "list devices")
		return
	}

	resp := homesdk.DeviceListResponse{Devices: make([]homesdk.DeviceResponse, 0, len(devices))}
	for _, d := range devices {
		resp.Devices = append(resp.Devices, deviceResponse(d))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetDevice godoc
//
//	@Summary	Get device
//	@Tags		Devices
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int	true	"Building ID"
//	@Param		roomId		path		int	true	"Room ID"
//	@Param		deviceId	path		int	true	"Device ID"
//	@Success	200			{object}	homesdk.DeviceResponse
//	@Failure	404			{object}	homesdk.ErrorResponse
//	@Router		/buildings/{id}/rooms/{roomId}/devices/{deviceId} [get].
func (h *RoomsHandler) HandleGetDevice(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id", "roomId", "deviceId")
	if !ok {
		return
	}

	device, err := h.RoomService.GetDevice(r.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		writeRoomError(w, r, err, "get device")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, deviceResponse(device))
}

// HandleRecordReading godoc
//
//	@Summary	Record device reading
//	@Tags		Devices
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int								true	"Building ID"
//	@Param		roomId		path		int								true	"Room ID"
//	@Param		deviceId	path		int								true	"Device ID"
//	@Param		request		body		homesdk.RecordReadingRequest	true	"data"
//	@Success	201			{object}	homesdk.ReadingResponse
//	@Failure	400			{object}	homesdk.ErrorResponse
//	@Failure	404			{object}	homesdk.ErrorResponse
//	@Router		/buildings/{id}/rooms/{roomId}/devices/{deviceId}/readings [post].
func (h *RoomsHandler) HandleRecordReading(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id", "roomId", "deviceId")
	if !ok {
		return
	}

	var req homesdk.RecordReadingRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	reading, err := h.RoomService.RecordReading(r.Context(), ids[0], ids[1], ids[2], req.Data)
	if err != nil {
		writeRoomError(w, r, err, "record reading")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, readingResponse(reading))
}

// HandleListReadings godoc
//
//	@Summary	List device readings
//	@Description	Newest first. limit defaults to 50 and is capped at 500.
//	@Tags		Devices
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int	true	"Building ID"
//	@Param		roomId		path		int	true	"Room ID"
//	@Param		deviceId	path		int	true	"Device ID"
//	@Param		limit		query		int	false	"Maximum readings"
//	@Success	200			{object}	homesdk.ReadingListResponse
//	@Failure	404			{object}	homesdk.ErrorResponse
//	@Router		/buildings/{id}/rooms/{roomId}/devices/{deviceId}/readings [get].
func (h *RoomsHandler) HandleListReadings(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id", "roomId", "deviceId")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "limit must be an integer",
			})
			return
		}
		limit = n
	}

	readings, err := h.RoomService.ListReadings(r.Context(), ids[0], ids[1], ids[2], limit)
	if err != nil {
		writeRoomError(w, r, err, "list readings")
		return
	}

	resp := homesdk.ReadingListResponse{Readings: make([]homesdk.ReadingResponse, 0, len(readings))}
	for _, reading := range readings {
		resp.Readings = append(resp.Readings, readingResponse(reading))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleLatestReading godoc
//
//	@Summary	Latest device reading
//	@Tags		Devices
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int	true	"Building ID"
//	@Param		roomId		path		int	true	"Room ID"
//	@Param		deviceId	path		int	true	"Device ID"
//	@Success	200			{object}	homesdk.ReadingResponse
//	@Failure	404			{object}	homesdk.ErrorResponse	"no readings yet"
//	@Router		/buildings/{id}/rooms/{roomId}/devices/{deviceId}/readings/latest [get].
func (h *RoomsHandler) HandleLatestReading(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "id", "roomId", "deviceId")
	if !ok {
		return
	}

	reading, err := h.RoomService.LatestReading(r.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		writeRoomError(w, r, err, "get latest reading")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, readingResponse(reading))
}

func roomResponse(r domain.Room) homesdk.RoomResponse {
	return homesdk.RoomResponse{
		ID:         r.ID,
		BuildingID: r.BuildingID,
		Name:       r.Name,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func deviceResponse(d domain.Device) homesdk.DeviceResponse {
	return homesdk.DeviceResponse{
		ID:        d.ID,
		RoomID:    d.RoomID,
		Name:      d.Name,
		Type:      d.Type,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func readingResponse(r domain.DeviceReading) homesdk.ReadingResponse {
	return homesdk.ReadingResponse{
		ID:         r.ID,
		DeviceID:   r.DeviceID,
		Data:       r.Data,
		RecordedAt: r.RecordedAt.UTC(),
	}
}
