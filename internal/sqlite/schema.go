package sqlite

const createStock = `CREATE TABLE IF NOT EXISTS stock (
    position INTEGER NOT NULL,
    item TEXT PRIMARY KEY CHECK (item <> ''),
    quantity INTEGER NOT NULL
);`

const (
	selectStock = `SELECT item, quantity FROM stock ORDER BY position`
	deleteStock = `DELETE FROM stock`
	insertStock = `INSERT INTO stock (position, item, quantity) VALUES (?, ?, ?)`
)
