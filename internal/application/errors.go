package application

import (
	"errors"

	"github.com/udconnect/udconnect-api/internal/domain/repository"
	"github.com/udconnect/udconnect-api/pkg/apperror"
)

// User-facing messages. Clients show them verbatim.
const (
	MsgUserNotFound         = "Usuario no encontrado"
	MsgWrongPassword        = "Contraseña incorrecta"
	MsgEmailTaken           = "El correo ya está registrado"
	MsgSpaceNotFound        = "Espacio no encontrado"
	MsgNotSpaceMember       = "No eres miembro de este espacio"
	MsgAlreadySpaceMember   = "Ya eres miembro de este espacio"
	MsgCreatorCannotLeave   = "El creador no puede salir de su espacio"
	MsgSpaceUpdateForbidden = "No tienes permiso para actualizar este espacio"
	MsgSpaceDeleteForbidden = "No tienes permiso para eliminar este espacio"
	MsgPostNotFound         = "Publicación no encontrada"
	MsgPostDeleteForbidden  = "No tienes permiso para eliminar esta publicación"
	MsgCommentNotFound      = "Comentario no encontrado"
	MsgCommentRequired      = "El contenido del comentario es requerido"
	MsgCommentTooLong       = "El comentario no puede exceder 500 caracteres"
	MsgParentMismatch       = "El comentario padre no pertenece a esta publicación"
	MsgCommentForbidden     = "No tienes permiso para eliminar este comentario"
	MsgPostContentRequired  = "El contenido es requerido"
	MsgPostTooLong          = "El contenido no puede exceder 300 caracteres"
	MsgSpaceNameRequired    = "El nombre del espacio es requerido"

	MsgSelfMatch              = "No puedes hacer match contigo mismo"
	MsgTargetRequired         = "El usuario destino es requerido"
	MsgRequestPending         = "Ya existe una solicitud de match pendiente"
	MsgAlreadyMatched         = "Ya son matches"
	MsgNotMatched             = "No son matches"
	MsgNotificationNotFound   = "Notificación no encontrada"
	MsgAcceptForbidden        = "No tienes permiso para aceptar esta solicitud"
	MsgRejectForbidden        = "No tienes permiso para rechazar esta solicitud"
	MsgNotificationForbidden  = "No tienes permiso para modificar esta notificación"
	MsgNotAMatchRequest       = "Esta notificación no es una solicitud de match"
	MsgSearchQueryRequired    = "El término de búsqueda es requerido"
)

// storeErr maps repository sentinels to typed errors. Anything else is internal.
func storeErr(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(notFound)
	}
	return apperror.Internal(err)
}
