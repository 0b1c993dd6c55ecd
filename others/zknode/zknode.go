package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"

	"github.com/lab2439/suuid"
)

const (
	ZKRootPath = "/suuid_nodes" // Root path in Zookeeper for node registration

	MaxWorkerID = 1 << 10 // worker IDs assigned modulo 1024
)

// NodeRegistry assigns this process a stable worker identity via
// Zookeeper and installs it as the 48-bit node field of the time-based
// UUID versions, so IDs minted by different workers can never collide in
// their node bits even inside the same clock tick.
type NodeRegistry struct {
	zkClient *zk.Conn // Zookeeper client connection
	service  string   // Service name (affects ZK node path)
	port     int      // Port (used to derive node uniqueness)

	workerID int64 // Worker ID for this instance
}

// NodeInfo represents info stored for each worker in both ZK and cache file.
type NodeInfo struct {
	LastTime   int64 `json:"last_time"`   // Last timestamp this node was active
	CreateTime int64 `json:"create_time"` // Creation timestamp
	WorkerID   int64 `json:"worker_id"`   // Worker ID
}

// NewNodeRegistry connects to Zookeeper, registers or recovers a worker
// ID, and binds the derived node identifier to the default generator.
func NewNodeRegistry(zkServers []string, serviceName string, port int) (*NodeRegistry, error) {
	reg := &NodeRegistry{
		service: serviceName,
		port:    port,
	}

	c, _, err := zk.Connect(zkServers, time.Second*5) // Connect to Zookeeper
	if err != nil {
		return nil, fmt.Errorf("connect zk failed: %v", err)
	}
	reg.zkClient = c

	workerID, err := reg.registerOrRecover() // Register or recover workerID
	if err != nil {
		return nil, err
	}
	reg.workerID = workerID

	if err := suuid.SetNodeID(reg.nodeID()); err != nil {
		return nil, fmt.Errorf("bind node id failed: %v", err)
	}
	log.Printf("node registry initialized with workerID: %d", workerID)

	// Periodically upload heartbeat and update state to Zookeeper and cache
	go reg.scheduledUploadTime()
	return reg, nil
}

// nodeID derives the 48-bit node identifier: a 2-byte service hash
// followed by the 4-byte worker ID. The generator forces the multicast
// bit on top, marking the value as not MAC-derived.
func (r *NodeRegistry) nodeID() []byte {
	var id [6]byte
	var h uint16
	for _, b := range []byte(r.service) {
		h = h*31 + uint16(b)
	}
	binary.BigEndian.PutUint16(id[0:2], h)
	binary.BigEndian.PutUint32(id[2:6], uint32(r.workerID))
	return id[:]
}

// registerOrRecover registers this node to Zookeeper or recovers assignment from cache or ZK.
func (r *NodeRegistry) registerOrRecover() (int64, error) {
	// Build the ZK service path: e.g., /suuid_nodes/serviceName
	servicePath := fmt.Sprintf("%s/%s", ZKRootPath, r.service)
	r.ensurePath(ZKRootPath)
	r.ensurePath(servicePath)

	nodeKey := fmt.Sprintf("%s/node-%d", servicePath, r.port) // Unique nodeKey per service+port

	var myNodeInfo NodeInfo
	var workerID int64

	exists, _, err := r.zkClient.Exists(nodeKey)
	if err != nil {
		return 0, fmt.Errorf("check node existence failed: %v", err)
	}

	if exists {
		// Attempt to recover workerID from ZK node
		data, _, err := r.zkClient.Get(nodeKey)
		if err != nil {
			return 0, fmt.Errorf("get node info failed: %v", err)
		}
		json.Unmarshal(data, &myNodeInfo)
		workerID = myNodeInfo.WorkerID

		currentTime := time.Now().UnixMilli()
		// Detect system clock rollback
		if currentTime < myNodeInfo.LastTime {
			return 0, fmt.Errorf("clock moved backwards: %d < %d", currentTime, myNodeInfo.LastTime)
		}

		log.Printf("recover workerID: %d from zk", workerID)
	} else {
		// Not registered in ZK, try local cache first
		cachedNode, err := r.loadLocalCache()
		if err == nil {
			workerID = cachedNode.WorkerID
			// Check for clock rollback against cached time
			if time.Now().UnixMilli() < cachedNode.LastTime {
				return 0, fmt.Errorf("clock moved backwards: %d < %d", time.Now().UnixMilli(), cachedNode.LastTime)
			}
			log.Printf("recover workerID: %d from local cache", workerID)
		} else {
			// Assign workerID by modulo if nothing found (simple assignment logic)
			workerID = int64(r.port % MaxWorkerID)
		}

		now := time.Now().UnixMilli()
		myNodeInfo = NodeInfo{
			WorkerID:   workerID,
			LastTime:   now,
			CreateTime: now,
		}
	}

	// Register or update node info in Zookeeper
	bytes, _ := json.Marshal(myNodeInfo)
	if exists {
		_, err = r.zkClient.Set(nodeKey, bytes, -1)
	} else {
		_, err = r.zkClient.Create(nodeKey, bytes, 0, zk.WorldACL(zk.PermAll))
	}
	if err != nil {
		return 0, fmt.Errorf("register or update node info failed: %v", err)
	}

	// Save to a local cache file for local recovery
	r.saveLocalCache(myNodeInfo)
	return workerID, nil
}

// scheduledUploadTime periodically updates this node's info in Zookeeper and the local cache.
func (r *NodeRegistry) scheduledUploadTime() {
	ticker := time.NewTicker(3 * time.Second)
	nodeKey := fmt.Sprintf("%s/%s/node-%d", ZKRootPath, r.service, r.port)

	var lastUpload int64
	for range ticker.C {
		now := time.Now().UnixMilli()

		// If local time went backwards between heartbeats, alert instead
		// of publishing a stale watermark.
		if now < lastUpload {
			log.Printf("Clock rollback detected during heartbeat! Local: %d, Last: %d", now, lastUpload)
			continue
		}
		lastUpload = now

		info := NodeInfo{
			WorkerID: r.workerID,
			LastTime: now,
		}
		data, _ := json.Marshal(info)

		// Ignore errors, since Zookeeper may occasionally be unavailable
		r.zkClient.Set(nodeKey, data, -1)

		// Update local file cache as well
		r.saveLocalCache(info)
	}
}

// ensurePath creates a ZK path if needed.
func (r *NodeRegistry) ensurePath(path string) {
	exists, _, _ := r.zkClient.Exists(path)
	if !exists {
		// Create the path with open permissions if it doesn't exist yet.
		r.zkClient.Create(path, []byte{}, 0, zk.WorldACL(zk.PermAll))
	}
}

// saveLocalCache saves the given NodeInfo to a file for local state recovery.
func (r *NodeRegistry) saveLocalCache(info NodeInfo) {
	data, _ := json.Marshal(info)
	fileName := fmt.Sprintf(".suuid_node_cache_%d", r.port)
	os.WriteFile(fileName, data, 0644)
}

// loadLocalCache loads NodeInfo from the local cache file, if present.
func (r *NodeRegistry) loadLocalCache() (NodeInfo, error) {
	fileName := fmt.Sprintf(".suuid_node_cache_%d", r.port)
	data, err := os.ReadFile(fileName)
	if err != nil {
		return NodeInfo{}, err
	}
	var info NodeInfo
	err = json.Unmarshal(data, &info)
	return info, err
}

func main() {
	// NOTE: This code requires a local Zookeeper at localhost:2181 to run.
	// You can use Docker to start Zookeeper for local testing:
	// docker run --name some-zookeeper -p 2181:2181 -d zookeeper

	zkServers := []string{"127.0.0.1:2181"}

	// Register this process, simulating a worker on port 8080
	_, err := NewNodeRegistry(zkServers, "order-service", 8080)
	if err != nil {
		log.Fatalf("Failed to init node registry: %v", err)
	}

	log.Println("Start generating IDs...")

	// Launch 10 goroutines concurrently to generate time-ordered IDs in
	// parallel, each generating 100 IDs. All carry this worker's node.
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[suuid.UUID]bool)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id, err := suuid.NewV6()
				if err != nil {
					log.Println(err)
					continue
				}
				mu.Lock()
				if seen[id] {
					log.Printf("duplicate ID: %v", id)
				}
				seen[id] = true
				mu.Unlock()
				fmt.Println(id.Compact())
			}
		}()
	}
	wg.Wait()
	log.Printf("Done. %d unique IDs.", len(seen))
}
