package docstore

import (
	"context"

	"cloud.google.com/go/datastore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DatastoreClient adapts Google Cloud Datastore to the Client contract.
// Only name-key get, insert, delete and kind scans are used; the adapter
// deliberately ignores Datastore's transactions so the service keeps the
// whole-document replace semantics it is written against.
type DatastoreClient struct {
	client *datastore.Client
}

func NewDatastoreClient(client *datastore.Client) *DatastoreClient {
	return &DatastoreClient{client: client}
}

func (d *DatastoreClient) Get(ctx context.Context, collection, id string) (Document, error) {
	var props datastore.PropertyList
	err := d.client.Get(ctx, datastore.NameKey(collection, id, nil), &props)
	if err == datastore.ErrNoSuchEntity {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Fields: propsToFields(props)}, nil
}

func (d *DatastoreClient) Create(ctx context.Context, collection, id string, fields Fields) error {
	key := datastore.NameKey(collection, id, nil)
	props := fieldsToProps(fields)
	_, err := d.client.Mutate(ctx, datastore.NewInsert(key, &props))
	if status.Code(err) == codes.AlreadyExists {
		return ErrAlreadyExists
	}
	return err
}

func (d *DatastoreClient) Delete(ctx context.Context, collection, id string) error {
	err := d.client.Delete(ctx, datastore.NameKey(collection, id, nil))
	if err == datastore.ErrNoSuchEntity {
		return nil
	}
	return err
}

func (d *DatastoreClient) Scan(ctx context.Context, collection string) ([]Document, error) {
	var lists []datastore.PropertyList
	keys, err := d.client.GetAll(ctx, datastore.NewQuery(collection), &lists)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(keys))
	for i, key := range keys {
		docs = append(docs, Document{ID: key.Name, Fields: propsToFields(lists[i])})
	}
	return docs, nil
}

func propsToFields(props datastore.PropertyList) Fields {
	fields := make(Fields, len(props))
	for _, p := range props {
		fields[p.Name] = p.Value
	}
	return fields
}

func fieldsToProps(fields Fields) datastore.PropertyList {
	props := make(datastore.PropertyList, 0, len(fields))
	for name, value := range fields {
		// Datastore stores integers as int64.
		if v, ok := value.(int); ok {
			value = int64(v)
		}
		props = append(props, datastore.Property{Name: name, Value: value})
	}
	return props
}
