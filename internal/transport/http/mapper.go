package http

import (
	"encoding/json"

	"github.com/npetrov/roomchat-server/internal/core"
	"github.com/npetrov/roomchat-server/internal/proto"
)

// inboundToCommand maps a wire frame to a core command. Field presence
// is checked here, before any state mutation; malformed-but-parseable
// frames come back as a proto error for the sender only.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Username == "" || join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "username and room are required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Username: join.Username,
			Room:     join.Room,
		}, nil, nil
	case proto.InboundTypeLeaveRoom:
		var leave proto.LeaveRoomData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, nil, err
		}
		if leave.Username == "" || leave.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "username and room are required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandLeaveRoom,
			Username: leave.Username,
			Room:     leave.Room,
		}, nil, nil
	case proto.InboundTypeSendMessage:
		var msg proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Username == "" || msg.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "username and room are required"}, nil
		}
		// Text emptiness is the router's call; it answers with an
		// explicit invalid_message error event.
		return &core.Command{
			Kind:     core.CommandSendMessage,
			Text:     msg.Text,
			Username: msg.Username,
			Room:     msg.Room,
		}, nil, nil
	case proto.InboundTypeCreateRoom:
		var create proto.CreateRoomData
		if err := json.Unmarshal(inbound.Data, &create); err != nil {
			return nil, nil, err
		}
		if create.Name == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandCreateRoom,
			Name: create.Name,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "unknown message type"}, nil
	}
}

// outboundFromEvent maps a core event to its wire frame.
func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data:  messagePayload(event.Message),
		}
	case core.EventHistory:
		batch := make([]proto.MessagePayload, 0, len(event.Messages))
		for _, msg := range event.Messages {
			batch = append(batch, messagePayload(msg))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessage,
			Data:  batch,
		}
	case core.EventRoomList:
		rooms := make([]proto.RoomPayload, 0, len(event.Rooms))
		for _, room := range event.Rooms {
			rooms = append(rooms, proto.RoomPayload{
				ID:        room.ID,
				Name:      room.Name,
				CreatedAt: room.CreatedAt,
			})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomList,
			Data:  rooms,
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func messagePayload(msg core.Message) proto.MessagePayload {
	return proto.MessagePayload{
		ID:        msg.ID,
		Text:      msg.Text,
		Username:  msg.Username,
		Room:      msg.Room,
		Timestamp: msg.Timestamp,
	}
}
