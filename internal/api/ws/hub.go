// Package ws streams task snapshot updates to connected browser
// clients so every open view re-renders after a mutation, whichever
// instance performed it.
package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/daygrid/internal/domain"
)

// SnapshotSource is the slice of the task store the hub needs: the
// current mapping and a change feed.
type SnapshotSource interface {
	Snapshot() domain.Snapshot
	Subscribe(fn func(domain.Snapshot)) func()
}

// Hub manages WebSocket connections fed by the task store's change
// notifications.
type Hub struct {
	store SnapshotSource
}

// NewHub creates a WebSocket hub over the given store.
func NewHub(store SnapshotSource) *Hub {
	return &Hub{store: store}
}

// ServeTasks handles a WebSocket connection for task updates. The
// current snapshot is sent on connect, then every subsequent one as
// mutations and external reconciliations land. A slow client skips
// intermediate snapshots and only sees the newest.
func (h *Hub) ServeTasks(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	updates := make(chan domain.Snapshot, 1)
	unsub := h.store.Subscribe(func(snap domain.Snapshot) {
		// Invoked under the store lock: never block. Replace a pending
		// snapshot instead of queueing behind it.
		for {
			select {
			case updates <- snap:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	defer unsub()

	if err := writeSnapshot(ctx, conn, h.store.Snapshot()); err != nil {
		log.Debug().Err(err).Msg("websocket write")
		return
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case snap := <-updates:
			if err := writeSnapshot(ctx, conn, snap); err != nil {
				log.Debug().Err(err).Msg("websocket write")
				return
			}
		}
	}
}

func writeSnapshot(ctx context.Context, conn *websocket.Conn, snap domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, raw)
}
