package driver

// Every relation endpoint is a :Concept node keyed by id. Endpoints that
// are real forms also carry the :Form label and the form's properties, so
// dangling relations survive a round trip.

var IndexQueries = []string{
	"CREATE INDEX ON :Concept(id);",
	"CREATE INDEX ON :Form(id);",
}

const (
	ClearGraphQuery = `
		MATCH (n:Concept)
		DETACH DELETE n
	`

	SaveFormsQuery = `
		UNWIND $forms AS f
		MERGE (n:Concept {id: f.id})
		SET n:Form,
			n.description = f.description,
			n.representation = f.representation,
			n.meta_properties = f.meta_properties,
			n.examples_count = f.examples_count,
			n.ethical_score = f.ethical_score
		RETURN count(n) AS saved
	`

	SaveRelationsQuery = `
		UNWIND $relations AS r
		MERGE (s:Concept {id: r.source_form_id})
		MERGE (t:Concept {id: r.target_form_id})
		CREATE (s)-[e:RELATES {seq: r.seq}]->(t)
		SET e.relation_type = r.relation_type,
			e.strength = r.strength
		RETURN count(e) AS saved
	`

	LoadFormsQuery = `
		MATCH (n:Form)
		RETURN n.id AS id,
			n.description AS description,
			n.representation AS representation,
			n.meta_properties AS meta_properties,
			n.examples_count AS examples_count,
			n.ethical_score AS ethical_score
		ORDER BY n.id
	`

	LoadRelationsQuery = `
		MATCH (s:Concept)-[e:RELATES]->(t:Concept)
		RETURN s.id AS source_form_id,
			t.id AS target_form_id,
			e.relation_type AS relation_type,
			e.strength AS strength
		ORDER BY e.seq
	`
)
