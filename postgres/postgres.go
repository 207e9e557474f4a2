// Package postgres installs SQL functions that encode and decode
// Reed-Solomon account addresses inside Postgres, so that explorer queries
// can filter and render accounts without a round trip through Go.
//
// Account ids are stored as signed BIGINT, the two's-complement view of the
// unsigned 64-bit id.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Config holds the settings baked into the installed functions.
type Config struct {
	// Prefix is written by rs_address in front of every address, and
	// stripped by rs_decode.
	Prefix string
}

// DefaultConfig returns the Burst mainnet configuration.
func DefaultConfig() Config {
	return Config{
		Prefix: "BURST-",
	}
}

var ErrConfigMismatch = errors.New("rsaddr: database config does not match application config")

// Migrate installs the rsaddr functions. It is idempotent; if the database
// was migrated with a different Config it returns ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg Config) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _rsaddr_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			prefix text NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("rsaddr: create config table: %w", err)
	}

	stored, err := GetConfig(ctx, db)
	switch {
	case err == nil:
		if stored != cfg {
			return fmt.Errorf("%w: db has prefix=%q, app has prefix=%q",
				ErrConfigMismatch, stored.Prefix, cfg.Prefix)
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx, `INSERT INTO _rsaddr_config (prefix) VALUES ($1)`, cfg.Prefix)
		if err != nil {
			return fmt.Errorf("rsaddr: insert config: %w", err)
		}
	default:
		return fmt.Errorf("rsaddr: read config: %w", err)
	}

	if _, err := db.ExecContext(ctx, functionsSQL); err != nil {
		return fmt.Errorf("rsaddr: install functions: %w", err)
	}
	if _, err := db.ExecContext(ctx, generateSQL(cfg)); err != nil {
		return fmt.Errorf("rsaddr: install prefix functions: %w", err)
	}
	return nil
}

// GetConfig reads the configuration stored by Migrate.
func GetConfig(ctx context.Context, db *sql.DB) (Config, error) {
	var cfg Config
	err := db.QueryRowContext(ctx, `SELECT prefix FROM _rsaddr_config`).Scan(&cfg.Prefix)
	return cfg, err
}

func generateSQL(cfg Config) string {
	prefix := pq.QuoteLiteral(cfg.Prefix)
	return fmt.Sprintf(`
CREATE OR REPLACE FUNCTION rs_address(id bigint)
  RETURNS text
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
  SELECT %s || rs_encode(id);
$$;

-- Trims and upper-cases an address and removes at most one prefix: the
-- configured one, else BURST-, S- or TS-.
CREATE OR REPLACE FUNCTION rs_strip_prefix(address text)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  s text := upper(btrim(address));
  p text;
BEGIN
  FOREACH p IN ARRAY ARRAY[upper(%s), 'BURST-', 'S-', 'TS-'] LOOP
    IF p <> '' AND left(s, char_length(p)) = p THEN
      RETURN substr(s, char_length(p) + 1);
    END IF;
  END LOOP;
  RETURN s;
END;
$$;
`,
		prefix, // prefix in rs_address
		prefix, // prefix in rs_strip_prefix
	)
}

const functionsSQL = `
-- Signed storage <-> unsigned account id
CREATE OR REPLACE FUNCTION account_to_unsigned(id bigint)
  RETURNS numeric
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT LEAKPROOF
  AS $$
  SELECT CASE WHEN id < 0 THEN id::numeric + 18446744073709551616 ELSE id::numeric END;
$$;

CREATE OR REPLACE FUNCTION account_from_unsigned(n numeric)
  RETURNS bigint
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
  SELECT CASE WHEN n >= 9223372036854775808 THEN (n - 18446744073709551616)::bigint ELSE n::bigint END;
$$;

-- GF(32) multiplication, field polynomial x^5 + x^2 + 1
CREATE OR REPLACE FUNCTION rs_gmult(x int, y int)
  RETURNS int
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT LEAKPROOF
  AS $$
  SELECT CASE WHEN x = 0 OR y = 0 THEN 0 ELSE
    ('{1,2,4,8,16,5,10,20,13,26,17,7,14,28,29,31,27,19,3,6,12,24,21,15,30,25,23,11,22,9,18,1}'::int[])[
      ((('{0,0,1,18,2,5,19,11,3,29,6,27,20,8,12,23,4,10,30,17,7,22,28,26,21,25,9,16,13,14,24,15}'::int[])[x + 1] +
        ('{0,0,1,18,2,5,19,11,3,29,6,27,20,8,12,23,4,10,30,17,7,22,28,26,21,25,9,16,13,14,24,15}'::int[])[y + 1]) % 31) + 1]
  END;
$$;

-- Check symbols of the 13 data symbols in cw[1..13]
CREATE OR REPLACE FUNCTION rs_checksum(cw int[])
  RETURNS int[]
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  p int[] := ARRAY[0, 0, 0, 0];
  fb int;
BEGIN
  FOR i IN REVERSE 13..1 LOOP
    fb := cw[i] # p[4];
    p[4] := p[3] # rs_gmult(30, fb);
    p[3] := p[2] # rs_gmult(6, fb);
    p[2] := p[1] # rs_gmult(9, fb);
    p[1] := rs_gmult(17, fb);
  END LOOP;
  RETURN p;
END;
$$;

CREATE OR REPLACE FUNCTION rs_encode(id bigint)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet char(32) := '23456789ABCDEFGHJKLMNPQRSTUVWXYZ';
  display int[] := ARRAY[4, 3, 2, 1, 8, 7, 6, 5, 14, 15, 16, 17, 13, 9, 10, 11, 12];
  n numeric := account_to_unsigned(id);
  cw int[] := array_fill(0, ARRAY[17]);
  p int[];
  result text := '';
BEGIN
  FOR i IN 1..13 LOOP
    cw[i] := mod(n, 32)::int;
    n := div(n, 32);
  END LOOP;
  p := rs_checksum(cw);
  FOR i IN 1..4 LOOP
    cw[13 + i] := p[i];
  END LOOP;
  FOR i IN 1..17 LOOP
    result := result || substr(alphabet, cw[display[i]] + 1, 1);
    IF i IN (4, 8, 12) THEN
      result := result || '-';
    END IF;
  END LOOP;
  RETURN result;
END;
$$;

CREATE OR REPLACE FUNCTION rs_decode(address text)
  RETURNS bigint
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet char(32) := '23456789ABCDEFGHJKLMNPQRSTUVWXYZ';
  display int[] := ARRAY[4, 3, 2, 1, 8, 7, 6, 5, 14, 15, 16, 17, 13, 9, 10, 11, 12];
  s text := rs_strip_prefix(address);
  cw int[] := array_fill(0, ARRAY[17]);
  p int[];
  c text;
  pos int;
  n numeric := 0;
BEGIN
  IF position('-' IN s) > 0 THEN
    IF s !~ '^[^-]{4}-[^-]{4}-[^-]{4}-[^-]{5}$' THEN
      RAISE EXCEPTION 'rs_decode: malformed address: %', address;
    END IF;
    s := replace(s, '-', '');
  END IF;
  IF char_length(s) <> 17 THEN
    RAISE EXCEPTION 'rs_decode: malformed address: %', address;
  END IF;
  FOR i IN 1..17 LOOP
    c := substr(s, i, 1);
    pos := strpos(alphabet, c);
    IF pos = 0 THEN
      RAISE EXCEPTION 'rs_decode: invalid character: %', c;
    END IF;
    cw[display[i]] := pos - 1;
  END LOOP;
  p := rs_checksum(cw);
  FOR i IN 1..4 LOOP
    IF p[i] <> cw[13 + i] THEN
      RAISE EXCEPTION 'rs_decode: checksum mismatch: %', address;
    END IF;
  END LOOP;
  FOR i IN REVERSE 13..1 LOOP
    n := n * 32 + cw[i];
  END LOOP;
  IF n >= 18446744073709551616 THEN
    RAISE EXCEPTION 'rs_decode: value out of range: %', address;
  END IF;
  RETURN account_from_unsigned(n);
END;
$$;
`
