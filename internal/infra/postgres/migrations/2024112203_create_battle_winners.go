package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS battle_winners (
				    room_id      TEXT NOT NULL REFERENCES battles (room_id) ON DELETE CASCADE,
				    position     INT NOT NULL,
				    player_id    TEXT NOT NULL,
				    display_name TEXT NOT NULL,
				    score        INT NOT NULL,
				    reward       INT NOT NULL,
				    PRIMARY KEY (room_id, position)
				)`)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS battle_winners`)
			return err
		},
	)
}
