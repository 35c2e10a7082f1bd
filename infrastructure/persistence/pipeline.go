package persistence

import (
	"vidtube/domain/query"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Stage helpers for the read pipelines. Stage order is fixed everywhere:
// match (filter + cursor) -> sort -> limit -> lookup -> flatten -> project,
// so joins only ever run against an already-bounded page.

// ownerAllowList is the only user shape that may leave a join; password and
// refreshToken are not in it and therefore can never appear in output.
var ownerAllowList = bson.D{
	{Key: "_id", Value: 1},
	{Key: "username", Value: 1},
	{Key: "fullName", Value: 1},
	{Key: "avatar", Value: 1},
}

// listMatchStage combines the base filter, the optional case-insensitive
// substring search, the optional owner equality filter and the cursor
// predicate into the single leading $match.
func listMatchStage(opts query.ListOptions, searchField string, base bson.D) bson.D {
	match := bson.D{}
	match = append(match, base...)
	if opts.PublishedOnly {
		match = append(match, bson.E{Key: "isPublished", Value: true})
	}
	if opts.Search != "" && searchField != "" {
		match = append(match, bson.E{Key: searchField, Value: bson.D{
			{Key: "$regex", Value: opts.Search},
			{Key: "$options", Value: "i"},
		}})
	}
	if !opts.Owner.IsZero() {
		match = append(match, bson.E{Key: "owner", Value: opts.Owner})
	}
	if opts.Cursor != nil {
		match = append(match, opts.Cursor.Filter()...)
	}
	return bson.D{{Key: "$match", Value: match}}
}

func sortStage(opts query.ListOptions) bson.D {
	return bson.D{{Key: "$sort", Value: opts.SortDoc()}}
}

func limitStage(limit int) bson.D {
	return bson.D{{Key: "$limit", Value: int64(limit)}}
}

// lookupStage joins child documents by foreign key equality.
func lookupStage(from, localField, foreignField, as string, pipeline ...bson.D) bson.D {
	lookup := bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}
	if len(pipeline) > 0 {
		lookup = append(lookup, bson.E{Key: "pipeline", Value: pipeline})
	}
	return bson.D{{Key: "$lookup", Value: lookup}}
}

// ownerLookupStage joins the owning user, restricted to the allow-list.
func ownerLookupStage(localField, as string) bson.D {
	return lookupStage(colUsers, localField, "_id", as,
		bson.D{{Key: "$project", Value: ownerAllowList}})
}

// flattenFirstStage reduces a one-to-one join result (a list of length <=1)
// to a single nullable object: {$first: []} yields null, never an error, so
// a dangling owner reference cannot break the pipeline.
func flattenFirstStage(field string) bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: field, Value: bson.D{{Key: "$first", Value: "$" + field}}},
	}}}
}

// sizeField computes a read-time counter from a joined child set.
func sizeField(name, of string) bson.E {
	return bson.E{Key: name, Value: bson.D{{Key: "$size", Value: bson.D{
		{Key: "$ifNull", Value: bson.A{"$" + of, bson.A{}}},
	}}}}
}

func projectStage(fields bson.D) bson.D {
	return bson.D{{Key: "$project", Value: fields}}
}

// listPipeline assembles the bounded feed pipeline up to and including the
// limit; callers append their joins and projection behind it.
func listPipeline(opts query.ListOptions, searchField string, base bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		listMatchStage(opts, searchField, base),
		sortStage(opts),
		limitStage(opts.Limit),
	}
}
